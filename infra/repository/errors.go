package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the translator knows about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
	pgNumericOutOfRange   = "22003"
	pgStringTooLong       = "22001"
)

var domainErrors = []error{
	domain.ErrNotFound,
	domain.ErrAlreadyExists,
	domain.ErrValidation,
	domain.ErrUnauthorized,
	domain.ErrForbidden,
	domain.ErrInsufficientFunds,
	domain.ErrInternal,
}

// MapGormErrorToDomain converts GORM and Postgres errors to domain errors.
// Errors that already carry a domain sentinel are returned untouched and
// anything unrecognised becomes domain.ErrInternal, keeping the original in
// the chain.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return err
		}
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated):
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, pgErr.Message)
		case pgForeignKeyViolation,
			pgNotNullViolation,
			pgCheckViolation,
			pgInvalidTextRepr,
			pgNumericOutOfRange,
			pgStringTooLong:
			return fmt.Errorf("%w: %s", domain.ErrValidation, pgErr.Message)
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrInternal, err)
}

// WrapError wraps a GORM operation and automatically maps errors.
//
// Usage:
//
//	err := WrapError(func() error {
//	    return r.db.WithContext(ctx).Create(user).Error
//	})
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
