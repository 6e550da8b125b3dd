package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message" example:"Transaction not found"`
}

// respondWithError maps service errors onto HTTP statuses. Client-facing messages are taken from
// the AppError in the chain; unexpected failures get fallbackMsg so internals never leak.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status, defaultMsg := classifyError(err)
	message := fallbackMsg
	if status != http.StatusInternalServerError || errors.Is(err, apperrors.ErrUpload) {
		message = defaultMsg
		if msg, ok := apperrors.Message(err); ok {
			message = msg
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.JSON(status, ErrorResponse{Message: message})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, apperrors.ErrSessionExpired):
		return http.StatusUnauthorized, "Session expired"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, apperrors.ErrUpload):
		return http.StatusInternalServerError, "Failed to upload attachments"
	default:
		return http.StatusInternalServerError, ""
	}
}

// requireUserID reads the authenticated user's ID, answering 401 itself when it is absent.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok || userID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context after auth middleware")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}
