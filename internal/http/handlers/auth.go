package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type AccountAuthenticator interface {
	CreateAccount(ctx context.Context, name, email, rawPassword string) (user.Identity, error)
	Authenticate(ctx context.Context, email, rawPassword string) (account.Response, error)
	SignOut() account.Response
}

type AuthHandler struct {
	svc          AccountAuthenticator
	secureCookie bool
}

func NewAuthHandler(svc AccountAuthenticator, secureCookie bool) *AuthHandler {
	return &AuthHandler{svc: svc, secureCookie: secureCookie}
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req user.SignUpRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	id, err := h.svc.CreateAccount(cctx, req.Name, req.Email, req.Password)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, id)
}

func (h *AuthHandler) SignIn(ctx *gin.Context) {
	var req user.SignInRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp, err := h.svc.Authenticate(cctx, req.Email, req.Password)
	if err != nil {
		RespondServiceError(ctx, err)
		return
	}

	h.write(ctx, http.StatusOK, resp)
}

func (h *AuthHandler) SignOut(ctx *gin.Context) {
	h.write(ctx, http.StatusOK, h.svc.SignOut())
}

func (h *AuthHandler) write(ctx *gin.Context, status int, resp account.Response) {
	if resp.Cookie != nil {
		h.applyCookie(ctx, resp.Cookie)
	}

	ctx.JSON(status, resp.Body)
}

func (h *AuthHandler) applyCookie(ctx *gin.Context, d *account.CookieDirective) {
	ctx.SetSameSite(http.SameSiteLaxMode)

	if d.Clear {
		ctx.SetCookie(d.Name, "", -1, "/", "", h.secureCookie, d.HTTPOnly)
		return
	}

	ctx.SetCookie(
		d.Name,
		d.Value,
		int(d.MaxAge/time.Second),
		"/",
		"",
		h.secureCookie,
		d.HTTPOnly,
	)
}
