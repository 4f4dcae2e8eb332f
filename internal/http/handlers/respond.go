package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/accounthub/internal/account"
	"github.com/geocoder89/accounthub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id := ctx.GetString(middlewares.CtxRequestID); id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "bad_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, "conflict", message, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}

// RespondServiceError renders an error from the account services. Tagged
// errors map to their status; anything else is logged and hidden behind a
// 500.
func RespondServiceError(ctx *gin.Context, err error) {
	var tagged *account.Error
	message := ""
	if errors.As(err, &tagged) {
		message = tagged.Message
	}

	switch account.KindOf(err) {
	case account.KindBadRequest:
		RespondBadRequest(ctx, message, nil)
	case account.KindConflict:
		RespondConflict(ctx, message)
	case account.KindNotFound:
		RespondNotFound(ctx, message)
	case account.KindUnauthorized:
		RespondUnauthorized(ctx, message)
	case account.KindUnknown:
		slog.Default().ErrorContext(ctx.Request.Context(), "unhandled service error",
			"err", err,
			"route", ctx.FullPath(),
			"request_id", requestIDFrom(ctx),
		)
		RespondInternal(ctx, "An error occurred on the server")
	}
}
