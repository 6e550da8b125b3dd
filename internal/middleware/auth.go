package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/finance_tracker_app/internal/apperrors"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

const (
	msgUnauthorized   = "Unauthorized"
	msgSessionExpired = "Session expired"
)

// AuthMiddleware resolves the bearer token to a user and stores the identity in the context.
// Nothing downstream runs, and no user lookup happens, until the token itself has verified.
func AuthMiddleware(tokens portssvc.TokenSvcFacade, users portssvc.UserReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			abortWithMessage(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := tokens.ParseAccessToken(ctx, tokenString)
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionExpired) {
				logger.Info("Expired token presented")
				abortWithMessage(c, http.StatusUnauthorized, msgSessionExpired)
				return
			}
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			abortWithMessage(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		user, err := users.GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				logger.Warn("Token subject does not match any user", slog.String("user_id", userID))
				abortWithMessage(c, http.StatusUnauthorized, msgUnauthorized)
				return
			}
			logger.Error("Failed to resolve token subject", slog.String("user_id", userID), slog.String("error", err.Error()))
			abortWithMessage(c, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))

		ctx = context.WithValue(ctx, userIDKey, user.UserID)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(userIDKey), user.UserID)
		c.Set(string(userKey), user)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func abortWithMessage(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
