package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/http/handlers"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/gin-gonic/gin"
)

func usersRouter(f *fakeProfiles, callerID string) *gin.Engine {
	h := handlers.NewUsersHandler(f)

	r := gin.New()
	g := r.Group("/users")
	if callerID != "" {
		g.Use(asUser(callerID))
	}
	g.GET("/me", h.GetMe)
	g.PATCH("/me", h.UpdateMe)
	g.GET("/:id", h.GetByID)
	return r
}

func TestGetMe(t *testing.T) {
	f := &fakeProfiles{getFn: func(ctx context.Context, id string) (user.User, error) {
		return user.User{ID: id, Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"}, nil
	}}

	w := httptest.NewRecorder()
	usersRouter(f, "caller").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":"caller"`) {
		t.Fatalf("body = %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "hash") {
		t.Fatalf("password hash serialized: %s", w.Body.String())
	}
}

func TestGetMeWithoutIdentity(t *testing.T) {
	w := httptest.NewRecorder()
	usersRouter(&fakeProfiles{}, "").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	f := &fakeProfiles{getFn: func(ctx context.Context, id string) (user.User, error) {
		return user.User{}, account.NotFound("user with id " + id + " not found")
	}}

	w := httptest.NewRecorder()
	usersRouter(f, "caller").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if msg := decodeError(t, w).Error.Message; !strings.Contains(msg, "abc") {
		t.Fatalf("message %q does not name the id", msg)
	}
}

func TestUpdateMe(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		updateErr  error
		wantStatus int
	}{
		{name: "rename", body: `{"name":"Anna"}`, wantStatus: http.StatusOK},
		{name: "invalid email", body: `{"email":"nope"}`, wantStatus: http.StatusBadRequest},
		{name: "conflict", body: `{"email":"bob@x.com"}`, updateErr: account.Conflict("taken", nil), wantStatus: http.StatusConflict},
		{name: "store down", body: `{"name":"Anna"}`, updateErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID string
			f := &fakeProfiles{updateFn: func(ctx context.Context, id string, patch store.Patch) (user.User, error) {
				gotID = id
				if tc.updateErr != nil {
					return user.User{}, tc.updateErr
				}
				u := user.User{ID: id}
				if patch.Name != nil {
					u.Name = *patch.Name
				}
				return u, nil
			}}

			w := doJSON(usersRouter(f, "caller"), http.MethodPatch, "/users/me", tc.body)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
			if gotID != "" && gotID != "caller" {
				t.Fatalf("update targeted %q", gotID)
			}
		})
	}
}
