package customer

import (
	"context"
	"customer-directory/internal/pkg/apperrors"
	"fmt"
)

var (
	ErrDuplicateEmail = fmt.Errorf("%w: customer email already registered", apperrors.ErrAlreadyExists)
)

// Store reads and writes the whole customer collection at once.
type Store interface {
	// Load fails with an error wrapping apperrors.ErrStoreRead when the backing
	// data is missing, unreadable or not a valid collection.
	Load(ctx context.Context) (Collection, error)

	// Save replaces the stored collection. Failures wrap apperrors.ErrStoreWrite.
	Save(ctx context.Context, customers Collection) error
}
