package database

import (
	"strings"

	"postboard/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation covers both dialects: TranslateError maps most cases to
// gorm.ErrDuplicatedKey, the message check catches drivers that do not translate.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint failed") ||
		strings.Contains(errMsg, "sqlstate 23505")
}
