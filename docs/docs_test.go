package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsRegistered(t *testing.T) {
	SwaggerInfo.Host = "api.example.com"
	SwaggerInfo.Schemes = []string{"https"}

	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Host    string                     `json:"host"`
		Schemes []string                   `json:"schemes"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "api.example.com", doc.Host)
	assert.Equal(t, []string{"https"}, doc.Schemes)
	for _, p := range []string{"/api/upload", "/api/resources", "/health", "/healthz"} {
		assert.Contains(t, doc.Paths, p)
	}
}
