package handlers

import (
	"errors"
	"net/http"

	"bearbank/internal/service"

	"github.com/gin-gonic/gin"
)

const errTransferFailed = "transfer failed"

// Request DTO for a transfer.
type transferRequest struct {
	ToUsername string `json:"toUsername" binding:"required"`
	Amount     int64  `json:"amount"`
}

// Request DTO for the admin balance override.
type adjustRequest struct {
	Username   string `json:"username" binding:"required"`
	NewBalance *int64 `json:"newBalance" binding:"required"` // pointer: zero is a valid target
}

// @Summary      Transfer funds to another account
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body  body  transferRequest  true  "Transfer payload"
// @Success      200  {object}  map[string]bool  "success"
// @Failure      400  {object}  map[string]string  "invalid amount, recipient not found, self transfer, insufficient funds"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/transfer [post]
// @Security     BearerAuth
func (h *Handler) transfer(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req transferRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	err := h.services.Transfer(c.Request.Context(), identity.UserID, req.ToUsername, req.Amount)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrRecipientNotFound),
		errors.Is(err, service.ErrSelfTransfer),
		errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errTransferFailed, "transfer_failed", err,
			"from_id", identity.UserID, "to", req.ToUsername, "amount", req.Amount)
	}
}

// @Summary      Set an account's balance (admin override)
// @Description  Unconditional set; negative values are allowed.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body  adjustRequest  true  "Adjust payload"
// @Success      200  {object}  map[string]bool  "success"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/adjust [post]
// @Security     BearerAuth
func (h *Handler) adjustBalance(c *gin.Context) {
	var req adjustRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	err := h.services.AdjustBalance(c.Request.Context(), req.Username, *req.NewBalance)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, "adjust failed", "adjust_failed", err,
			"username", req.Username)
	}
}
