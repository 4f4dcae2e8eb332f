package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/geocoder89/accounthub/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  store.FaultKind
		wantField string
		notFound  bool
	}{
		{
			name:     "no rows",
			err:      fmt.Errorf("scan: %w", pgx.ErrNoRows),
			notFound: true,
		},
		{
			name:      "unique email",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			wantKind:  store.FaultDuplicateKey,
			wantField: "email",
		},
		{
			name:      "name check",
			err:       &pgconn.PgError{Code: "23514", ConstraintName: "users_name_check"},
			wantKind:  store.FaultValidation,
			wantField: "name",
		},
		{
			name:      "not null",
			err:       &pgconn.PgError{Code: "23502", ColumnName: "password_hash"},
			wantKind:  store.FaultValidation,
			wantField: "password_hash",
		},
		{
			name:     "other pg error",
			err:      &pgconn.PgError{Code: "40001"},
			wantKind: store.FaultOther,
		},
		{
			name:     "connection error",
			err:      errors.New("connection refused"),
			wantKind: store.FaultOther,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapError("op", tc.err)

			if tc.notFound {
				if !errors.Is(got, store.ErrNotFound) {
					t.Fatalf("got %v, want ErrNotFound", got)
				}
				return
			}

			var fault *store.Fault
			if !errors.As(got, &fault) {
				t.Fatalf("got %T, want *store.Fault", got)
			}
			if fault.Kind != tc.wantKind {
				t.Fatalf("kind = %s, want %s", fault.Kind, tc.wantKind)
			}
			if fault.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", fault.Field, tc.wantField)
			}
			if !errors.Is(got, tc.err) {
				t.Fatalf("fault does not wrap the driver error")
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if mapError("op", nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}
