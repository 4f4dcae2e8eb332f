package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/gin-gonic/gin"
)

type ProfileManager interface {
	GetProfile(ctx context.Context, userID string) (user.User, error)
	UpdateProfile(ctx context.Context, userID string, patch store.Patch) (user.User, error)
}

type UsersHandler struct {
	profiles ProfileManager
}

func NewUsersHandler(profiles ProfileManager) *UsersHandler {
	return &UsersHandler{profiles: profiles}
}

func (h *UsersHandler) GetMe(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Authorization required")
		return
	}

	h.respondProfile(ctx, userID)
}

func (h *UsersHandler) GetByID(ctx *gin.Context) {
	h.respondProfile(ctx, ctx.Param("id"))
}

// UpdateMe only ever targets the authenticated caller's record.
func (h *UsersHandler) UpdateMe(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Authorization required")
		return
	}

	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	u, err := h.profiles.UpdateProfile(cctx, userID, store.Patch{Name: req.Name, Email: req.Email})
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}

func (h *UsersHandler) respondProfile(ctx *gin.Context, userID string) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.profiles.GetProfile(cctx, userID)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, u)
}
