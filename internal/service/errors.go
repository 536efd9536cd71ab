package service

import (
	"errors"

	"bulkmart/internal/model"
)

// isDomainError reports whether err is a plain domain error rather than a store failure.
func isDomainError(err error) bool {
	var domainErr *model.DomainError
	return errors.As(err, &domainErr) && !errors.Is(err, model.ErrStoreUnavailable)
}
