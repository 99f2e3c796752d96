package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "volunteerhub/internal/errors"
)

// classify maps store errors from inserts, updates and lookups onto the
// domain taxonomy. Drivers without error translation are matched on their
// constraint messages.
func classify(resource string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(resource)
	case isDuplicateKey(err):
		return apperrors.Conflict(resource, err)
	case isForeignKey(err):
		return apperrors.MissingRelation(resource, err)
	}
	return err
}

// classifyDelete is classify for deletes, where a foreign-key failure means
// other rows still reference the target.
func classifyDelete(resource string, err error) error {
	if err != nil && isForeignKey(err) {
		return apperrors.Referenced(resource, err)
	}
	return classify(resource, err)
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "a foreign key constraint fails") ||
		strings.Contains(msg, "violates foreign key constraint")
}
