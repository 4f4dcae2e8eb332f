package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// userSchema mirrors the column constraints of the users table.
type userSchema struct {
	ID           string `validate:"required,uuid"`
	Name         string `validate:"required,min=2,max=30"`
	Email        string `validate:"required,email"`
	PasswordHash string `validate:"required"`
}

type UsersRepo struct {
	mu      sync.RWMutex
	items   map[string]user.User // id -> user
	byEmail map[string]string    // email -> id
	v       *validator.Validate
}

var _ store.UserStore = (*UsersRepo)(nil)

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items:   make(map[string]user.User),
		byEmail: make(map[string]string),
		v:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if err := r.validate("create", u); err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return user.User{}, store.DuplicateKey("create", "email", errors.New("email already in use"))
	}

	r.items[u.ID] = u
	r.byEmail[u.Email] = u.ID

	return project(u, store.Public), nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string, proj store.Projection) (user.User, error) {
	if err := uuid.Validate(id); err != nil {
		return user.User{}, store.Validation("find_by_id", "id", err)
	}

	r.mu.RLock()
	u, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, store.ErrNotFound
	}

	return project(u, proj), nil
}

func (r *UsersRepo) FindOne(ctx context.Context, email string, proj store.Projection) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return user.User{}, store.ErrNotFound
	}

	return project(r.items[id], proj), nil
}

func (r *UsersRepo) FindByIDAndUpdate(ctx context.Context, id string, patch store.Patch) (user.User, error) {
	if err := uuid.Validate(id); err != nil {
		return user.User{}, store.Validation("update", "id", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return user.User{}, store.ErrNotFound
	}

	next := current
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	if patch.Email != nil {
		next.Email = *patch.Email
	}

	if err := r.validate("update", next); err != nil {
		return user.User{}, err
	}

	if next.Email != current.Email {
		if owner, taken := r.byEmail[next.Email]; taken && owner != id {
			return user.User{}, store.DuplicateKey("update", "email", errors.New("email already in use"))
		}
		delete(r.byEmail, current.Email)
		r.byEmail[next.Email] = id
	}

	next.UpdatedAt = time.Now().UTC()
	r.items[id] = next

	return project(next, store.Public), nil
}

func (r *UsersRepo) validate(op string, u user.User) error {
	err := r.v.Struct(userSchema{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
	})
	if err == nil {
		return nil
	}

	field := ""
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field = verrs[0].Field()
	}

	return store.Validation(op, field, err)
}

func project(u user.User, proj store.Projection) user.User {
	if proj != store.WithCredential {
		u.PasswordHash = ""
	}
	return u
}
