package handlers

import (
	"net/http"
	"strings"

	"library_backend/internal/graph"

	"github.com/gin-gonic/gin"
)

// currentUserMiddleware resolves the request's bearer token into the
// per-request current user. No Authorization header means anonymous; a
// malformed header or invalid token rejects the request outright. A valid
// token whose user no longer exists stays anonymous.
func (h *Handler) currentUserMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Next()
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	user, err := h.services.ResolveUser(c.Request.Context(), parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Infow("token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	if user != nil {
		c.Request = c.Request.WithContext(graph.WithCurrentUser(c.Request.Context(), user))
	}
	c.Next()
}
