// Package store defines the persistence contract the account services depend
// on. Implementations live under internal/repo.
package store

import (
	"context"

	"github.com/geocoder89/accounthub/internal/domain/user"
)

// Projection selects which user fields a read returns.
type Projection int

const (
	// Public omits the password hash.
	Public Projection = iota
	// WithCredential includes the password hash. Only credential checks use it.
	WithCredential
)

// Patch is a partial user update. Nil fields are not touched.
type Patch struct {
	Name  *string
	Email *string
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil
}

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	FindByID(ctx context.Context, id string, proj Projection) (user.User, error)
	FindOne(ctx context.Context, email string, proj Projection) (user.User, error)
	FindByIDAndUpdate(ctx context.Context, id string, patch Patch) (user.User, error)
}
