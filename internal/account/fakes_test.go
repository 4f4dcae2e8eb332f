package account_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore lets each test script only the calls it cares about.
type fakeStore struct {
	createFn   func(ctx context.Context, u user.User) (user.User, error)
	findByIDFn func(ctx context.Context, id string, proj store.Projection) (user.User, error)
	findOneFn  func(ctx context.Context, email string, proj store.Projection) (user.User, error)
	updateFn   func(ctx context.Context, id string, patch store.Patch) (user.User, error)
}

func (f *fakeStore) Create(ctx context.Context, u user.User) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return u, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id string, proj store.Projection) (user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id, proj)
	}
	return user.User{}, store.ErrNotFound
}

func (f *fakeStore) FindOne(ctx context.Context, email string, proj store.Projection) (user.User, error) {
	if f.findOneFn != nil {
		return f.findOneFn(ctx, email, proj)
	}
	return user.User{}, store.ErrNotFound
}

func (f *fakeStore) FindByIDAndUpdate(ctx context.Context, id string, patch store.Patch) (user.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, patch)
	}
	return user.User{}, store.ErrNotFound
}
