package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errLoadAccount  = "failed to load account"
	errListAccounts = "failed to list accounts"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current account
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user"
// @Failure      401  {object}  map[string]string
// @Router       /api/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	account, err := h.services.Self(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadAccount, "me_failed", err, "user_id", identity.UserID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": account})
}

// @Summary      List accounts (basic view)
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "users"
// @Failure      401  {object}  map[string]string
// @Router       /api/users [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListBasic(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListAccounts, "list_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// @Summary      List accounts (admin view, includes roles)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "users"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
// @Security     BearerAuth
func (h *Handler) listUsersAdmin(c *gin.Context) {
	users, err := h.services.ListFull(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListAccounts, "admin_list_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
