package handlers

import (
	"net/http"
	"strings"

	"bearbank/internal/models"
	"bearbank/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	identityKey  = "identity"
	requestIDKey = "requestId"

	requestIDHeader = "X-Request-Id"
)

// requestIDMiddleware attaches a request id to the context and response so
// failures in logs can be matched to a specific call.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Writer.Header().Set(requestIDHeader, id)
	c.Next()
}

// authMiddleware verifies the bearer token and stores the identity in the
// request context. Any failure rejects the request before business logic.
func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	identity, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(identityKey, identity)
	c.Next()
}

// adminOnly passes only callers whose token carries the admin role.
// Composes after authMiddleware.
func (h *Handler) adminOnly(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil || identity.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin only",
		})
		return
	}
	c.Next()
}

// identityFrom returns the verified identity set by authMiddleware, or nil.
func identityFrom(c *gin.Context) *service.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}
