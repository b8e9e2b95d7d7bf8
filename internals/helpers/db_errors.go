package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// NotFound builds the user-facing 404 for a missing record.
func NotFound(entity string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, entity+" doesn't exist or may have been removed")
}

// FromDBError maps database failures to client-safe fiber errors. Raw
// database text is never returned to the caller.
func FromDBError(err error, entity string) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusConflict, entity+" already exists")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fiber.NewError(fiber.StatusConflict, entity+" already exists"+constraintHint(pgErr))
		case pgForeignKeyViolation:
			return fiber.NewError(fiber.StatusBadRequest, entity+" references a record that doesn't exist")
		case pgCheckViolation:
			return fiber.NewError(fiber.StatusBadRequest, entity+" has an invalid value"+constraintHint(pgErr))
		}
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to process "+entity)
}

// IsUniqueViolation reports whether err is a pg 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func constraintHint(pgErr *pgconn.PgError) string {
	if strings.TrimSpace(pgErr.ConstraintName) == "" {
		return ""
	}
	return " (" + pgErr.ConstraintName + ")"
}
