package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/store"
)

type ProfileService struct {
	users store.UserStore
	log   *slog.Logger
}

func NewProfileService(users store.UserStore, log *slog.Logger) *ProfileService {
	if log == nil {
		log = slog.Default()
	}

	return &ProfileService{
		users: users,
		log:   log.With("component", "profile_service"),
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	u, err := s.users.FindByID(ctx, userID, store.Public)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return user.User{}, NotFound(fmt.Sprintf("user with id %s not found", userID))
		}
		if store.KindOf(err) == store.FaultValidation {
			return user.User{}, BadRequest("invalid user id", err)
		}
		return user.User{}, err
	}

	return u, nil
}

// UpdateProfile changes name and/or email on the caller's own record.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, patch store.Patch) (user.User, error) {
	if patch.Empty() {
		return user.User{}, BadRequest("nothing to update: provide name or email", nil)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Email != nil {
		email := user.NormalizeEmail(*patch.Email)
		patch.Email = &email
	}

	updated, err := s.users.FindByIDAndUpdate(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return user.User{}, NotFound(fmt.Sprintf("user with id %s not found", userID))
		}

		switch store.KindOf(err) {
		case store.FaultDuplicateKey:
			return user.User{}, Conflict("a user with this email already exists", err)
		case store.FaultValidation:
			return user.User{}, BadRequest("invalid data passed when updating the profile", err)
		case store.FaultOther:
			return user.User{}, err
		}
		return user.User{}, err
	}

	s.log.InfoContext(ctx, "profile updated", "user_id", userID)

	return updated, nil
}
