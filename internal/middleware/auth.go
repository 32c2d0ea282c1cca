package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/logger"
	"hrportal_backend/pkg/apperrors"
	"hrportal_backend/pkg/contextkeys"
)

// AuthMiddleware - проверка сессии из cookie (или заголовка Authorization для API-клиентов)
func AuthMiddleware(sessions *auth.SessionIssuer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.Validate(tokenFromRequest(c, cookieName))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware - сессия, если она есть; запрос без нее тоже проходит
func OptionalAuthMiddleware(sessions *auth.SessionIssuer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c, cookieName); token != "" {
			if claims, err := sessions.Validate(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin - только admin и superadmin. Ставится после AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			apperrors.HandleError(c, apperrors.ErrNotAuthenticated)
			return
		}
		if !auth.IsAdminRole(GetRole(c)) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(string(contextkeys.UserIDKey))
}

// GetRole - роль из сессии
func GetRole(c *gin.Context) string {
	return c.GetString(string(contextkeys.RoleKey))
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(string(contextkeys.UserIDKey), claims.UserID)
	c.Set(string(contextkeys.RoleKey), claims.Role)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

func tokenFromRequest(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
