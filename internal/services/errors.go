package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the presentation layer. Handlers map these onto
// HTTP status codes; services wrap them with context via fmt.Errorf("%w").
var (
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("attachment storage unavailable")
	ErrConcurrentUpdate   = errors.New("record changed concurrently")
)

// ConflictError rejects a location deletion and reports how many assets still
// reference the location.
type ConflictError struct {
	Count int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("location is still referenced by %d assets", e.Count)
}
