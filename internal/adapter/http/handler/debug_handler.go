package handler

import (
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"
	"paymenu-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// DebugHandler exposes raw state dumps. Only mounted in debug server mode;
// password hashes stay out of the payload via the domain JSON tags.
type DebugHandler struct {
	userRepo ports.UserRepository
	txRepo   ports.TransactionRepository
	cardRepo ports.CardRepository
}

// NewDebugHandler creates a new DebugHandler.
func NewDebugHandler(userRepo ports.UserRepository, txRepo ports.TransactionRepository, cardRepo ports.CardRepository) *DebugHandler {
	return &DebugHandler{userRepo: userRepo, txRepo: txRepo, cardRepo: cardRepo}
}

// Users handles GET /debug/users.
func (h *DebugHandler) Users(c *gin.Context) {
	users, err := h.userRepo.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, users)
}

// Transactions handles GET /debug/transactions.
func (h *DebugHandler) Transactions(c *gin.Context) {
	txns, err := h.txRepo.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, txns)
}

// CardRequests handles GET /debug/cardrequests.
func (h *DebugHandler) CardRequests(c *gin.Context) {
	cards, err := h.cardRepo.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	response.OK(c, cards)
}
