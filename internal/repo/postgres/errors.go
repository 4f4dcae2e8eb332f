package postgres

import (
	"errors"

	"github.com/geocoder89/accounthub/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes we translate into store faults.
const (
	uniqueViolation          = "23505"
	checkViolation           = "23514"
	notNullViolation         = "23502"
	stringDataTruncation     = "22001"
	invalidTextRepresenation = "22P02"
)

// mapError turns a pgx error into store.ErrNotFound or a typed *store.Fault.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return store.DuplicateKey(op, fieldFromConstraint(pgErr.ConstraintName), err)
		case checkViolation:
			return store.Validation(op, fieldFromConstraint(pgErr.ConstraintName), err)
		case notNullViolation:
			return store.Validation(op, pgErr.ColumnName, err)
		case stringDataTruncation, invalidTextRepresenation:
			return store.Validation(op, pgErr.ColumnName, err)
		}
	}

	return store.Other(op, err)
}

func fieldFromConstraint(name string) string {
	switch name {
	case "users_email_key", "users_email_check":
		return "email"
	case "users_name_check":
		return "name"
	default:
		return name
	}
}
