package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/domain/user"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/geocoder89/accounthub/internal/store"
	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	createFn       func(ctx context.Context, name, email, password string) (user.Identity, error)
	authenticateFn func(ctx context.Context, email, password string) (account.Response, error)
}

func (f *fakeAuth) CreateAccount(ctx context.Context, name, email, password string) (user.Identity, error) {
	if f.createFn != nil {
		return f.createFn(ctx, name, email, password)
	}
	return user.Identity{}, nil
}

func (f *fakeAuth) Authenticate(ctx context.Context, email, password string) (account.Response, error) {
	if f.authenticateFn != nil {
		return f.authenticateFn(ctx, email, password)
	}
	return account.Response{}, nil
}

func (f *fakeAuth) SignOut() account.Response {
	return account.Response{
		Body:   account.MessageBody{Message: "signed out"},
		Cookie: &account.CookieDirective{Name: "jwt", HTTPOnly: true, Clear: true},
	}
}

type fakeProfiles struct {
	getFn    func(ctx context.Context, id string) (user.User, error)
	updateFn func(ctx context.Context, id string, patch store.Patch) (user.User, error)
}

func (f *fakeProfiles) GetProfile(ctx context.Context, id string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, id)
	}
	return user.User{}, nil
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, id string, patch store.Patch) (user.User, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, patch)
	}
	return user.User{}, nil
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			JSON   string `json:"json"`
			Fields []struct {
				Field string `json:"field"`
				Rule  string `json:"rule"`
			} `json:"fields"`
		} `json:"details"`
	} `json:"error"`
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v body=%s", err, w.Body.String())
	}
	return resp
}

// asUser mimics RequireAuth having accepted a session for id.
func asUser(id string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middlewares.CtxUserID, id)
		c.Next()
	}
}
