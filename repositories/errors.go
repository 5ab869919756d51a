package repositories

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no rows.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique constraint violations.
	ErrDuplicate = errors.New("duplicate key")

	// ErrConflict is returned when a row exists but is not in the state the
	// operation requires.
	ErrConflict = errors.New("state conflict")
)

func IsNotFound(err error) bool  { return errors.Is(err, ErrNotFound) }
func IsDuplicate(err error) bool { return errors.Is(err, ErrDuplicate) }
func IsConflict(err error) bool  { return errors.Is(err, ErrConflict) }

// translate maps gorm and driver errors onto the package sentinels and adds
// msg as context.
func translate(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errors.Wrap(ErrNotFound, msg)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return errors.Wrapf(ErrDuplicate, "%s: %v", msg, err)
	}
	return errors.Wrap(err, msg)
}

// Drivers that gorm cannot translate still carry recognisable messages.
func isUniqueViolation(err error) bool {
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || // sqlite
		strings.Contains(s, "duplicate key value") || // postgres
		strings.Contains(s, "Duplicate entry") // mysql
}
