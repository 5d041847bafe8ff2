package handler

import (
	"paymenu-backend/internal/adapter/http/dto"
	"paymenu-backend/internal/adapter/http/middleware"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"
	"paymenu-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler handles the authenticated account's read endpoints.
type UserHandler struct {
	transferSvc ports.TransferService
	cardSvc     ports.CardService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(transferSvc ports.TransferService, cardSvc ports.CardService) *UserHandler {
	return &UserHandler{transferSvc: transferSvc, cardSvc: cardSvc}
}

// Profile handles GET /user/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	response.OK(c, dto.ProfileResponse{
		Message: "User profile fetched successfully.",
		Data:    user,
	})
}

// Transactions handles GET /user/transactions.
func (h *UserHandler) Transactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	txns, err := h.transferSvc.History(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransactionsResponse{Transactions: txns})
}

// Cards handles GET /user/cards.
func (h *UserHandler) Cards(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	cards, err := h.cardSvc.List(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CardsResponse{Cards: cards})
}
