package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDBError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "record not found",
			err:     fmt.Errorf("load: %w", gorm.ErrRecordNotFound),
			code:    fiber.StatusNotFound,
			message: "class doesn't exist or may have been removed",
		},
		{
			name:    "unique violation",
			err:     &pgconn.PgError{Code: "23505", ConstraintName: "uq_classes_code"},
			code:    fiber.StatusConflict,
			message: "class already exists (uq_classes_code)",
		},
		{
			name:    "foreign key violation",
			err:     &pgconn.PgError{Code: "23503"},
			code:    fiber.StatusBadRequest,
			message: "class references a record that doesn't exist",
		},
		{
			name:    "raw database error is hidden",
			err:     errors.New(`pq: relation "classes" does not exist`),
			code:    fiber.StatusInternalServerError,
			message: "failed to process class",
		},
		{
			name:    "fiber error passes through",
			err:     fiber.NewError(fiber.StatusBadRequest, "bad"),
			code:    fiber.StatusBadRequest,
			message: "bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDBError(tt.err, "class")
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.code, fe.Code)
			assert.Equal(t, tt.message, fe.Message)
		})
	}

	assert.NoError(t, FromDBError(nil, "class"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}
