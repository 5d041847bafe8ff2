package service

import (
	"context"
	"fmt"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AutoVerifier approves every submission synchronously. It stands in for a
// real adjudication backend behind the ports.KYCVerifier interface.
type AutoVerifier struct{}

// NewAutoVerifier creates an AutoVerifier.
func NewAutoVerifier() *AutoVerifier {
	return &AutoVerifier{}
}

// Review always returns verified.
func (v *AutoVerifier) Review(ctx context.Context, user *domain.User, detail domain.KYCDetail) (domain.KYCStatus, error) {
	return domain.KYCStatusVerified, nil
}

// KYCServiceImpl implements ports.KYCService.
type KYCServiceImpl struct {
	userRepo ports.UserRepository
	verifier ports.KYCVerifier
	log      zerolog.Logger
}

// NewKYCService creates a new KYCServiceImpl.
func NewKYCService(userRepo ports.UserRepository, verifier ports.KYCVerifier, log zerolog.Logger) *KYCServiceImpl {
	return &KYCServiceImpl{
		userRepo: userRepo,
		verifier: verifier,
		log:      log,
	}
}

// Submit records the document data and runs the verification decision.
// Resubmission overwrites the previous detail record.
func (s *KYCServiceImpl) Submit(ctx context.Context, userID uuid.UUID, req ports.KYCSubmission) (domain.KYCStatus, *domain.KYCDetail, error) {
	if req.DocumentType == "" || req.DocumentNumber == "" || req.Address == "" {
		return "", nil, apperror.ErrKYCFieldsRequired()
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return "", nil, apperror.ErrInvalidToken()
	}

	detail := domain.KYCDetail{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
		SubmittedAt:    time.Now().UTC(),
	}

	status, err := s.verifier.Review(ctx, user, detail)
	if err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("review submission: %w", err))
	}

	if err := s.userRepo.SetVerification(ctx, userID, status, &detail); err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("save verification: %w", err))
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Str("username", user.Username).
		Str("kyc_status", string(status)).
		Msg("KYC data submitted")

	return status, &detail, nil
}

// Status returns the account's current verification state.
func (s *KYCServiceImpl) Status(ctx context.Context, userID uuid.UUID) (domain.KYCStatus, *domain.KYCDetail, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return "", nil, apperror.ErrInvalidToken()
	}
	return user.KYCStatus, user.KYCDetail, nil
}
