package services

import (
	stderrors "errors"

	"github.com/vytor/learnloop/internal/errors"
)

// storeError maps a repository failure to an AppError. AppErrors raised inside
// a transaction pass through unchanged.
func storeError(resource string, id any, err error) error {
	if appErr, ok := errors.As(err); ok {
		return appErr
	}
	if stderrors.Is(err, errors.ErrConflict) {
		return errors.NewConflictError(resource, id)
	}
	return errors.NewInternalError(err)
}
