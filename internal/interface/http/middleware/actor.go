package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/campus-market-backend/internal/interface/http/response"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "userID"
	UserIDHeader     = "X-User-ID"
)

// ActorMiddleware кладёт в контекст идентификатор текущего пользователя.
// Идентификатор приходит из сессии мобильного клиента, здесь он не проверяется.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" {
			c.Set(ContextUserIDKey, userID)
		}
		c.Next()
	}
}

// RequireActor отклоняет запросы без пользователя.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			response.Unauthorized(c, "не указан пользователь")
			return
		}
		c.Next()
	}
}

// UserID возвращает пользователя из контекста или пустую строку.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}
