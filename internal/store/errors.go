package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no user.
var ErrNotFound = errors.New("user not found")

type FaultKind int

const (
	FaultOther FaultKind = iota
	// FaultDuplicateKey signals a unique index violation (email).
	FaultDuplicateKey
	// FaultValidation signals a value rejected by the schema.
	FaultValidation
)

func (k FaultKind) String() string {
	switch k {
	case FaultDuplicateKey:
		return "duplicate_key"
	case FaultValidation:
		return "validation"
	default:
		return "other"
	}
}

// Fault is the typed error every store implementation returns for write and
// read failures other than ErrNotFound.
type Fault struct {
	Kind  FaultKind
	Op    string
	Field string
	Err   error
}

func (f *Fault) Error() string {
	if f.Field != "" {
		return fmt.Sprintf("store %s: %s on %s: %v", f.Op, f.Kind, f.Field, f.Err)
	}
	return fmt.Sprintf("store %s: %s: %v", f.Op, f.Kind, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func DuplicateKey(op, field string, err error) *Fault {
	return &Fault{Kind: FaultDuplicateKey, Op: op, Field: field, Err: err}
}

func Validation(op, field string, err error) *Fault {
	return &Fault{Kind: FaultValidation, Op: op, Field: field, Err: err}
}

func Other(op string, err error) *Fault {
	return &Fault{Kind: FaultOther, Op: op, Err: err}
}

// KindOf reports the fault kind carried by err. Errors that are not faults
// are FaultOther.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultOther
}
