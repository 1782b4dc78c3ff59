package store

import (
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrDuplicateKey = stderrors.New("duplicate key")
	ErrForeignKey   = stderrors.New("foreign key violation")
	ErrNotFound     = stderrors.New("record not found")
)

// translate maps driver errors onto the store sentinels and returns nil for
// anything else. gorm's TranslateError covers both dialects; the message
// checks catch driver versions that surface raw constraint errors.
func translate(err error) error {
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case stderrors.Is(err, gorm.ErrDuplicatedKey):
		return errors.WithMessage(ErrDuplicateKey, err.Error())
	case stderrors.Is(err, gorm.ErrForeignKeyViolated):
		return errors.WithMessage(ErrForeignKey, err.Error())
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"),
		strings.Contains(msg, "duplicate key value"):
		return errors.WithMessage(ErrDuplicateKey, msg)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "violates foreign key constraint"):
		return errors.WithMessage(ErrForeignKey, msg)
	}
	return nil
}

func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	if translated := translate(err); translated != nil {
		return translated
	}
	return errors.Wrap(err, op)
}
