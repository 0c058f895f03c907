package model

import "time"

// UploadRecord is the metadata row stored for every successfully ingested file.
// FilePath points at the stored blob: an absolute path for the local store or a public URL for bucket stores.
type UploadRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Language    string    `json:"language"`
	Provider    string    `json:"provider"`
	Roles       []string  `json:"roles"`
	FilePath    string    `json:"filePath"`
	FileName    string    `json:"fileName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadInput carries the caller-supplied fields of a new record.
// ID and CreatedAt are assigned by the database.
type UploadInput struct {
	Title       string
	Description string
	Category    string
	Language    string
	Provider    string
	Roles       []string
	FilePath    string
	FileName    string
}
