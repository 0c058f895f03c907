package repository

import (
	"context"

	"uploadapi/internal/model"
)

// UploadRepository defines data access for upload records using SQL queries only.
// Persistence only, no business logic.
type UploadRepository interface {
	// Create inserts a new upload record.
	// The database assigns ID and CreatedAt; the returned record carries them.
	Create(ctx context.Context, in *model.UploadInput) (*model.UploadRecord, error)

	// ListAll returns every stored record without filtering or pagination.
	// An empty table yields an empty, non-nil slice.
	ListAll(ctx context.Context) ([]model.UploadRecord, error)
}
