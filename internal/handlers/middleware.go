package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey  = "userId"
	tokenQuery = "token"
)

// userIdMiddleware resolves the session from a Bearer header or, for clients
// that cannot set headers (WebSocket, iframe), from the ?token= query.
func (h *Handler) userIdMiddleware(c *gin.Context) {
	token, msg := bearerToken(c)
	if msg != "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": msg,
		})
		return
	}

	userId, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

func bearerToken(c *gin.Context) (token, errMsg string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		if q := c.Query(tokenQuery); q != "" {
			return q, ""
		}
		return "", "missing Authorization header"
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", "invalid Authorization header format"
	}
	return parts[1], ""
}

// sessionID returns the id stored by userIdMiddleware.
func sessionID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}
