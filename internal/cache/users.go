package cache

import (
	"context"
	"time"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/store"
)

// UserStore serves public FindByID reads from memory and keeps the entry in
// step with updates made through it. Credential reads always hit the store.
type UserStore struct {
	next     store.UserStore
	profiles *Cache[user.User]
}

var _ store.UserStore = (*UserStore)(nil)

func NewUserStore(next store.UserStore, ttl time.Duration) *UserStore {
	return &UserStore{
		next:     next,
		profiles: New[user.User](ttl),
	}
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	return s.next.Create(ctx, u)
}

func (s *UserStore) FindByID(ctx context.Context, id string, proj store.Projection) (user.User, error) {
	if proj != store.Public {
		return s.next.FindByID(ctx, id, proj)
	}

	if u, ok := s.profiles.Get(id); ok {
		return u, nil
	}

	u, err := s.next.FindByID(ctx, id, proj)
	if err != nil {
		return user.User{}, err
	}

	s.profiles.Set(id, u)
	return u, nil
}

func (s *UserStore) FindOne(ctx context.Context, email string, proj store.Projection) (user.User, error) {
	return s.next.FindOne(ctx, email, proj)
}

func (s *UserStore) FindByIDAndUpdate(ctx context.Context, id string, patch store.Patch) (user.User, error) {
	s.profiles.Delete(id)

	u, err := s.next.FindByIDAndUpdate(ctx, id, patch)
	if err != nil {
		return user.User{}, err
	}

	u.PasswordHash = ""
	s.profiles.Set(id, u)
	return u, nil
}
