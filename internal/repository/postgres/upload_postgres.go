package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"uploadapi/internal/model"
	"uploadapi/internal/repository"
)

// UploadPostgres is a PostgreSQL implementation of repository.UploadRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UploadPostgres struct {
	db *sql.DB
}

// NewUploadPostgres creates a new UploadPostgres repository.
func NewUploadPostgres(db *sql.DB) *UploadPostgres {
	return &UploadPostgres{db: db}
}

var _ repository.UploadRepository = (*UploadPostgres)(nil)

const uploadColumns = `id, title, description, category, language, provider, roles, file_path, file_name, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new upload row and returns the stored record.
func (r *UploadPostgres) Create(ctx context.Context, in *model.UploadInput) (*model.UploadRecord, error) {
	roles := in.Roles
	if roles == nil {
		roles = []string{}
	}
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return nil, fmt.Errorf("encode roles: %w", err)
	}

	const q = `
		INSERT INTO upload_records (title, description, category, language, provider, roles, file_path, file_name)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)
		RETURNING ` + uploadColumns

	row := r.db.QueryRowContext(ctx, q,
		in.Title,
		in.Description,
		in.Category,
		in.Language,
		in.Provider,
		rolesJSON,
		in.FilePath,
		in.FileName,
	)
	rec, err := scanUpload(row)
	if err != nil {
		return nil, fmt.Errorf("insert upload record: %w", err)
	}
	return rec, nil
}

// ListAll returns every upload row, oldest first.
func (r *UploadPostgres) ListAll(ctx context.Context) ([]model.UploadRecord, error) {
	const q = `SELECT ` + uploadColumns + ` FROM upload_records ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query upload records: %w", err)
	}
	defer rows.Close()

	items := make([]model.UploadRecord, 0)
	for rows.Next() {
		rec, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upload records: %w", err)
	}
	return items, nil
}

func scanUpload(s rowScanner) (*model.UploadRecord, error) {
	var (
		out   model.UploadRecord
		roles []byte
	)
	if err := s.Scan(
		&out.ID,
		&out.Title,
		&out.Description,
		&out.Category,
		&out.Language,
		&out.Provider,
		&roles,
		&out.FilePath,
		&out.FileName,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}

	out.Roles = []string{}
	if len(roles) > 0 {
		if err := json.Unmarshal(roles, &out.Roles); err != nil {
			return nil, fmt.Errorf("decode roles: %w", err)
		}
		if out.Roles == nil {
			out.Roles = []string{}
		}
	}
	return &out, nil
}
