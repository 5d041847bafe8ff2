package handler

import (
	"paymenu-backend/internal/adapter/http/dto"
	"paymenu-backend/internal/adapter/http/middleware"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"
	"paymenu-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles the transfer ledger endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Send handles POST /transfers/send.
func (h *TransferHandler) Send(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation("Recipient, valid amount, and currency are required."))
		return
	}

	txn, err := h.transferSvc.Transfer(c.Request.Context(), ports.TransferRequest{
		SenderID:            user.ID,
		RecipientIdentifier: req.RecipientIdentifier,
		Amount:              req.Amount,
		Currency:            req.Currency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		Message:     "Transfer successful.",
		Transaction: txn,
	})
}
