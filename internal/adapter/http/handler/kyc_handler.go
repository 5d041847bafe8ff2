package handler

import (
	"paymenu-backend/internal/adapter/http/dto"
	"paymenu-backend/internal/adapter/http/middleware"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"
	"paymenu-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// KYCHandler handles the verification gate endpoints.
type KYCHandler struct {
	kycSvc ports.KYCService
}

// NewKYCHandler creates a new KYCHandler.
func NewKYCHandler(kycSvc ports.KYCService) *KYCHandler {
	return &KYCHandler{kycSvc: kycSvc}
}

// Submit handles POST /kyc/submit.
func (h *KYCHandler) Submit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.KYCSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrKYCFieldsRequired())
		return
	}
	dto.SanitizeStruct(&req)

	status, detail, err := h.kycSvc.Submit(c.Request.Context(), user.ID, ports.KYCSubmission{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.KYCSubmitResponse{
		Message:   "KYC information submitted and auto-verified.",
		KYCStatus: status,
		KYCData:   detail,
	})
}

// Status handles GET /kyc/status.
func (h *KYCHandler) Status(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	status, detail, err := h.kycSvc.Status(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.KYCStatusResponse{
		KYCStatus: status,
		KYCData:   detail,
		UserID:    user.ID.String(),
	})
}
