package middleware

import (
	"errors"
	"strings"

	"github.com/hari2128-cell/CureVox/internal/auth"
	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/services"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"
	"github.com/hari2128-cell/CureVox/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Gin context keys set by the request gate.
const (
	ContextUserIDKey      = "userID"
	ContextClaimsKey      = "claims"
	ContextBearerTokenKey = "bearerToken"
)

// AuthMiddleware is the request gate for protected routes. It verifies the
// bearer token and, when strictRevocation is on, additionally requires an
// active session row for it.
func AuthMiddleware(tokens *auth.TokenManager, authService services.AuthService, strictRevocation bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			c.Abort()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrMalformedToken)
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := tokens.ParseToken(tokenStr)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				apperrors.HandleError(c, apperrors.ErrTokenExpired)
			case errors.Is(err, auth.ErrInvalidSignature):
				apperrors.HandleError(c, apperrors.ErrInvalidSignature)
			case errors.Is(err, auth.ErrMalformedToken):
				apperrors.HandleError(c, apperrors.ErrMalformedToken)
			default:
				apperrors.HandleError(c, apperrors.ErrInvalidToken)
			}
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		if strictRevocation {
			db, ok := c.Get(string(contextkeys.DBContextKey))
			if ok {
				active, err := authService.IsSessionActive(c.Request.Context(), db.(*gorm.DB), tokenStr)
				if err != nil {
					logger.CtxWithError(c.Request.Context(), "session revocation check failed", err)
					apperrors.HandleError(c, err)
					c.Abort()
					return
				}
				if !active {
					apperrors.HandleError(c, apperrors.ErrSessionRevoked)
					c.Abort()
					return
				}
			}
		}

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID())
		c.Request = c.Request.WithContext(ctx)
		c.Set(ContextUserIDKey, claims.UserID())
		c.Set(ContextClaimsKey, claims)
		c.Set(ContextBearerTokenKey, tokenStr)
		c.Next()
	}
}

// RequireRoles restricts a route to the given roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[string(r)] = true
	}

	return func(c *gin.Context) {
		claimsVal, exists := c.Get(ContextClaimsKey)
		if !exists {
			apperrors.HandleError(c, apperrors.NewForbiddenError("access denied"))
			c.Abort()
			return
		}
		claims, ok := claimsVal.(*auth.Claims)
		if !ok {
			apperrors.HandleError(c, apperrors.NewForbiddenError("access denied"))
			c.Abort()
			return
		}
		for _, role := range claims.Roles {
			if roleSet[role] {
				c.Next()
				return
			}
		}
		apperrors.HandleError(c, apperrors.NewForbiddenError("insufficient permissions"))
		c.Abort()
	}
}

// GetUserID extracts the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(ContextUserIDKey)
	if !exists {
		return ""
	}
	id, _ := userID.(string)
	return id
}

// GetBearerToken extracts the raw bearer token set by the gate.
func GetBearerToken(c *gin.Context) string {
	token, exists := c.Get(ContextBearerTokenKey)
	if !exists {
		return ""
	}
	t, _ := token.(string)
	return t
}
