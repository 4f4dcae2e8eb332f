package postgres

import (
	"context"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBObserver records latency and error class per logical operation.
type DBObserver interface {
	ObserveDB(op string, fn func() error) error
}

type UsersRepo struct {
	pool    *pgxpool.Pool
	metrics DBObserver
}

var _ store.UserStore = (*UsersRepo)(nil)

func NewUsersRepo(pool *pgxpool.Pool, metrics DBObserver) *UsersRepo {
	return &UsersRepo{pool: pool, metrics: metrics}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	err := r.observe("users.create", func() error {
		_, err := r.pool.Exec(
			ctx,
			`INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
			 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		)
		return err
	})

	if err != nil {
		return user.User{}, mapError("create", err)
	}

	u.PasswordHash = ""
	return u, nil
}

func (r *UsersRepo) FindByID(ctx context.Context, id string, proj store.Projection) (user.User, error) {
	if err := uuid.Validate(id); err != nil {
		return user.User{}, store.Validation("find_by_id", "id", err)
	}

	var u user.User

	err := r.observe("users.find_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, email, `+credentialColumn(proj)+`, created_at, updated_at
			 FROM users
			 WHERE id = $1`,
			id,
		).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, mapError("find_by_id", err)
	}

	return u, nil
}

func (r *UsersRepo) FindOne(ctx context.Context, email string, proj store.Projection) (user.User, error) {
	var u user.User

	err := r.observe("users.find_by_email", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, name, email, `+credentialColumn(proj)+`, created_at, updated_at
			 FROM users
			 WHERE email = $1`,
			email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, mapError("find_one", err)
	}

	return u, nil
}

func (r *UsersRepo) FindByIDAndUpdate(ctx context.Context, id string, patch store.Patch) (user.User, error) {
	if err := uuid.Validate(id); err != nil {
		return user.User{}, store.Validation("update", "id", err)
	}

	var u user.User

	err := r.observe("users.update", func() error {
		return r.pool.QueryRow(
			ctx,
			`UPDATE users
			 SET name = COALESCE($2, name),
			     email = COALESCE($3, email),
			     updated_at = now()
			 WHERE id = $1
			 RETURNING id, name, email, created_at, updated_at`,
			id, patch.Name, patch.Email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	})

	if err != nil {
		return user.User{}, mapError("update", err)
	}

	return u, nil
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.metrics == nil {
		return fn()
	}
	return r.metrics.ObserveDB(op, fn)
}

// credentialColumn keeps the scan shape fixed while leaving the hash out of
// public reads.
func credentialColumn(proj store.Projection) string {
	if proj == store.WithCredential {
		return "password_hash"
	}
	return "''"
}
