package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the ingestion workflow. Handlers classify with errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrStorage    = errors.New("storage error")
	ErrDatabase   = errors.New("database error")
)

// ErrNoFile is returned when an upload carries no file field.
var ErrNoFile = fmt.Errorf("%w: no file provided", ErrValidation)
