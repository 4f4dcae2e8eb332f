package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/accounthub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

func TestReadyz(t *testing.T) {
	ok := handlers.Check{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := handlers.Check{Name: "redis", Ping: func(context.Context) error { return errors.New("refused") }}

	tests := []struct {
		name   string
		checks []handlers.Check
		want   int
	}{
		{name: "no checks", want: http.StatusOK},
		{name: "all up", checks: []handlers.Check{ok}, want: http.StatusOK},
		{name: "one down", checks: []handlers.Check{ok, down}, want: http.StatusServiceUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := handlers.NewHealthHandler(tc.checks...)
			r := gin.New()
			r.GET("/readyz", h.Readyz)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
