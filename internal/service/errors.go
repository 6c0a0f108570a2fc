package service

import (
	"errors"

	"github.com/vpsfleet/inventory-service/internal/repository"
)

// ErrInvalidArgument marks rejected input: blank required text, an unknown
// status value, or a payment profile reference that does not exist.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound and ErrConflict are re-exported so callers only need to know
// the service package.
var (
	ErrNotFound = repository.ErrNotFound
	ErrConflict = repository.ErrConflict
)
