package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"billpilot_backend/internal/auth"
	"billpilot_backend/internal/logger"
	"billpilot_backend/pkg/apperrors"
	"billpilot_backend/pkg/contextkeys"
)

// AuthMiddleware validates the Bearer access token and stores the caller's
// identity in the request context. Every protected route group mounts it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header is missing"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header must be a Bearer token"))
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(parts[1])
		if err != nil {
			if apperrors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.New(
					apperrors.CodeTokenExpired, "auth", "Access token has expired", 401))
			} else {
				apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid access token"))
			}
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		c.Set(string(contextkeys.RolesContextKey), claims.Roles)

		// Carry the identity into the slog context too
		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRole gates a route group behind a role carried in the access token
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(string(contextkeys.RolesContextKey))
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
			c.Abort()
			return
		}

		roles, ok := val.([]string)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
			c.Abort()
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		logger.CtxWarn(c.Request.Context(), "role check failed",
			"required", role, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewForbiddenError("Insufficient permissions"))
		c.Abort()
	}
}
