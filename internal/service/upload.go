package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"uploadapi/internal/config"
	"uploadapi/internal/logger"
	"uploadapi/internal/model"
	"uploadapi/internal/repository"
	"uploadapi/internal/storage"
)

const defaultContentType = "application/octet-stream"

var tracer = otel.Tracer("uploadapi/internal/service")

// FileInput is the file part of an upload form. Size is the length declared by
// the form; zero means unknown.
type FileInput struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadRequest holds the submitted form. File is nil when the form had no file field.
type UploadRequest struct {
	Title       string
	Description string
	Category    string
	Language    string
	Provider    string
	Roles       []string
	File        *FileInput
}

// FileInfo echoes the received file back to the client.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// UploadResult is returned after the blob and its metadata are both persisted.
type UploadResult struct {
	Record *model.UploadRecord
	Object storage.Object
	File   FileInfo
}

// UploadService defines the ingestion and listing use cases.
type UploadService interface {
	// Upload stores the file in the blob store, then records its metadata.
	// If the metadata insert fails the blob is left in place.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// List returns every upload record.
	List(ctx context.Context) ([]model.UploadRecord, error)
}

// Option configures an uploadService.
type Option func(*uploadService)

// WithLogger sets the logger used for workflow events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *uploadService) {
		s.log = log
	}
}

// WithKeyStrategy selects how storage keys are derived from the client filename.
func WithKeyStrategy(strategy string) Option {
	return func(s *uploadService) {
		s.keyStrategy = strategy
	}
}

// WithMetrics records ingestion outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(s *uploadService) {
		s.metrics = m
	}
}

// uploadService is a concrete implementation of UploadService.
type uploadService struct {
	store       storage.BlobStore
	repo        repository.UploadRepository
	log         logrus.FieldLogger
	keyStrategy string
	metrics     *Metrics
}

// NewUploadService constructs a new UploadService.
func NewUploadService(store storage.BlobStore, repo repository.UploadRepository, opts ...Option) UploadService {
	s := &uploadService{
		store:       store,
		repo:        repo,
		log:         logger.Discard(),
		keyStrategy: config.KeyStrategyOriginal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *uploadService) Upload(ctx context.Context, req UploadRequest) (_ *UploadResult, err error) {
	ctx, span := tracer.Start(ctx, "UploadService.Upload", trace.WithSpanKind(trace.SpanKindInternal))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := s.log.WithField("component", "ingestion")

	if req.File == nil || req.File.Content == nil {
		s.metrics.observe(outcomeValidationError)
		log.WithField("step", "validate").Info("upload rejected: no file")
		return nil, ErrNoFile
	}

	content, err := io.ReadAll(req.File.Content)
	if err != nil {
		s.metrics.observe(outcomeStorageError)
		return nil, fmt.Errorf("%w: read upload: %w", ErrStorage, err)
	}
	if req.File.Size > 0 && int64(len(content)) != req.File.Size {
		s.metrics.observe(outcomeStorageError)
		return nil, fmt.Errorf("%w: read upload: got %d of %d bytes", ErrStorage, len(content), req.File.Size)
	}

	contentType := req.File.ContentType
	if contentType == "" {
		contentType = defaultContentType
	}
	key := s.storageKey(req.File.Name)
	log = log.WithField("key", key)
	span.SetAttributes(
		attribute.String("upload.key", key),
		attribute.Int("upload.size", len(content)),
	)

	obj, err := s.store.Store(ctx, key, content, contentType)
	if err != nil {
		s.metrics.observe(outcomeStorageError)
		log.WithField("step", "store_blob").WithError(err).Error("blob store failed")
		return nil, fmt.Errorf("%w: store blob: %w", ErrStorage, err)
	}
	log.WithFields(logrus.Fields{"step": "store_blob", "locator": obj.Locator, "size": obj.Size}).Info("blob stored")

	rec, err := s.repo.Create(ctx, &model.UploadInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Language:    req.Language,
		Provider:    req.Provider,
		Roles:       req.Roles,
		FilePath:    obj.Locator,
		FileName:    req.File.Name,
	})
	if err != nil {
		s.metrics.observe(outcomeDatabaseError)
		log.WithFields(logrus.Fields{
			"step":   "persist_metadata",
			"orphan": obj.Locator,
			"error":  err.Error(),
		}).Warn("metadata insert failed; blob left in storage")
		return nil, fmt.Errorf("%w: save metadata: %w", ErrDatabase, err)
	}
	log.WithFields(logrus.Fields{"step": "persist_metadata", "id": rec.ID}).Info("upload recorded")

	s.metrics.observe(outcomeSuccess)
	span.SetAttributes(attribute.String("upload.id", rec.ID))

	return &UploadResult{
		Record: rec,
		Object: obj,
		File: FileInfo{
			Name: req.File.Name,
			Size: int64(len(content)),
			Type: contentType,
		},
	}, nil
}

// List returns all records straight from the repository.
func (s *uploadService) List(ctx context.Context) ([]model.UploadRecord, error) {
	ctx, span := tracer.Start(ctx, "UploadService.List")
	defer span.End()

	items, err := s.repo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: list uploads: %w", ErrDatabase, err)
	}
	return items, nil
}

// storageKey derives the blob name. The uuid strategy keeps only the original extension.
func (s *uploadService) storageKey(original string) string {
	if s.keyStrategy == config.KeyStrategyUUID || original == "" {
		return uuid.NewString() + filepath.Ext(original)
	}
	return original
}
