package handler

import (
	"fmt"

	"paymenu-backend/internal/adapter/http/dto"
	"paymenu-backend/internal/adapter/http/middleware"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"
	"paymenu-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// CardHandler handles mock card issuance.
type CardHandler struct {
	cardSvc ports.CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardSvc ports.CardService) *CardHandler {
	return &CardHandler{cardSvc: cardSvc}
}

// Issue handles POST /cards/issue.
func (h *CardHandler) Issue(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CardIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidCardType())
		return
	}
	dto.SanitizeStruct(&req)

	card, err := h.cardSvc.Issue(c.Request.Context(), user.ID, req.CardType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CardIssueResponse{
		Message: fmt.Sprintf("%s card issued successfully.", card.CardType),
		Card:    card,
	})
}
