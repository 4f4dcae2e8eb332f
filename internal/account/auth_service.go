// Package account holds the signup/signin and profile logic. It talks to
// persistence only through store.UserStore and reports failures as tagged
// *Error values that the HTTP layer turns into responses.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/accounthub/internal/auth"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/security"
	"github.com/geocoder89/accounthub/internal/store"
)

const msgInvalidCredentials = "invalid email or password"

// SessionConfig is the signing setup for session tokens. Secret is already
// resolved for the deployment environment.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

type AuthService struct {
	users  store.UserStore
	tokens *auth.Manager
	log    *slog.Logger
}

func NewAuthService(users store.UserStore, cfg SessionConfig, log *slog.Logger) (*AuthService, error) {
	tokens, err := auth.NewManager(cfg.Secret, cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("session tokens: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log.With("component", "auth_service"),
	}, nil
}

// CreateAccount hashes the password and stores a new user.
func (s *AuthService) CreateAccount(ctx context.Context, name, email, rawPassword string) (user.Identity, error) {
	hash, err := security.HashPassword(rawPassword)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return user.Identity{}, BadRequest("password is too long", err)
	}
	if err != nil {
		return user.Identity{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, user.New(name, email, hash))
	if err != nil {
		switch store.KindOf(err) {
		case store.FaultDuplicateKey:
			return user.Identity{}, Conflict("a user with this email already exists", err)
		case store.FaultValidation:
			return user.Identity{}, BadRequest("invalid data passed when creating a user", err)
		case store.FaultOther:
			return user.Identity{}, err
		}
		return user.Identity{}, err
	}

	s.log.InfoContext(ctx, "user created", "user_id", created.ID)

	return created.Identity(), nil
}

// Authenticate checks credentials and issues a session token. A missing
// user and a wrong password produce the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (Response, error) {
	found, err := s.users.FindOne(ctx, user.NormalizeEmail(email), store.WithCredential)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			security.BurnCompare(rawPassword)
			return Response{}, Unauthorized(msgInvalidCredentials)
		}
		return Response{}, err
	}

	err = security.CheckPassword(found.PasswordHash, rawPassword)
	if err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return Response{}, Unauthorized(msgInvalidCredentials)
		}
		return Response{}, fmt.Errorf("compare password: %w", err)
	}

	token, _, err := s.tokens.Issue(found.ID)
	if err != nil {
		return Response{}, fmt.Errorf("sign session token: %w", err)
	}

	s.log.InfoContext(ctx, "user signed in", "user_id", found.ID)

	return Response{
		Body:   TokenBody{Token: token},
		Cookie: setSessionCookie(token, s.tokens.TTL()),
	}, nil
}

// SignOut drops the session cookie. Tokens are stateless, so there is
// nothing to revoke server side.
func (s *AuthService) SignOut() Response {
	return Response{
		Body:   MessageBody{Message: "signed out"},
		Cookie: clearSessionCookie(),
	}
}

// VerifySession resolves a session token to the user id it was issued for.
func (s *AuthService) VerifySession(token string) (string, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return "", err
	}

	return claims.UserID(), nil
}
