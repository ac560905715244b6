package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationDetection(t *testing.T) {
	wrapped := func(code string) error {
		return fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: code, Message: "violation"})
	}

	tests := []struct {
		name       string
		err        error
		unique     bool
		foreignKey bool
		notNull    bool
		check      bool
	}{
		{name: "pg unique", err: wrapped(pgCodeUniqueViolation), unique: true},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, unique: true},
		{name: "pg foreign key", err: wrapped(pgCodeForeignKeyViolation), foreignKey: true},
		{name: "gorm foreign key", err: gorm.ErrForeignKeyViolated, foreignKey: true},
		{name: "pg not null", err: wrapped(pgCodeNotNullViolation), notNull: true},
		{name: "not null message", err: fmt.Errorf("null value in column \"email\""), notNull: true},
		{name: "pg check", err: wrapped(pgCodeCheckViolation), check: true},
		{name: "other", err: fmt.Errorf("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, isUniqueConstraintViolation(tt.err))
			assert.Equal(t, tt.foreignKey, isForeignKeyConstraintViolation(tt.err))
			assert.Equal(t, tt.notNull, isNotNullConstraintViolation(tt.err))
			assert.Equal(t, tt.check, isCheckConstraintViolation(tt.err))
		})
	}
}
