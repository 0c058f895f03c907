package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("STORAGE_DRIVER", "MinIO")
	t.Setenv("S3_USE_PATH_STYLE", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
	assert.Equal(t, StorageDriverMinIO, cfg.Storage.Driver)
	assert.True(t, cfg.Storage.S3.UsePathStyle)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORAGE_DRIVER", "STORAGE_KEY_STRATEGY", "LOCAL_UPLOAD_DIR", "S3_REGION", "BODY_LIMIT_MB", "PORT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, StorageDriverLocal, cfg.Storage.Driver)
	assert.Equal(t, KeyStrategyOriginal, cfg.Storage.KeyStrategy)
	assert.Equal(t, "uploads", cfg.Storage.Local.Dir)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 50*1024*1024, cfg.BodyLimitBytes())
	assert.Empty(t, cfg.Storage.MinIO.SecretKey)
	assert.Empty(t, cfg.Storage.S3.SecretKey)
}

func TestAppConfig_Location(t *testing.T) {
	cfg := &AppConfig{Timezone: "Asia/Jakarta"}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		assert.Equal(t, loc.String(), cfg.Location().String())
	}

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
