package repositories

import (
	"errors"

	"hr-selfservice/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewID returns a time-ordered identifier for new rows and documents
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// translate maps gorm errors onto domain errors. notFound is returned for missing rows.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errors.Join(domain.ErrConflict, err)
	default:
		return err
	}
}
