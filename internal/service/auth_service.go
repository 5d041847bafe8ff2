package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AuthServiceImpl implements ports.AuthService.
type AuthServiceImpl struct {
	userRepo       ports.UserRepository
	hashSvc        ports.HashService
	tokenSvc       ports.TokenService
	openingBalance decimal.Decimal
}

// NewAuthService creates a new AuthServiceImpl. openingBalance is credited to
// every account at signup.
func NewAuthService(
	userRepo ports.UserRepository,
	hashSvc ports.HashService,
	tokenSvc ports.TokenService,
	openingBalance decimal.Decimal,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:       userRepo,
		hashSvc:        hashSvc,
		tokenSvc:       tokenSvc,
		openingBalance: openingBalance,
	}
}

// Signup creates a new account with the opening balance and returns a token.
func (s *AuthServiceImpl) Signup(ctx context.Context, req ports.SignupRequest) (*ports.AuthResult, error) {
	passwordHash, err := s.hashSvc.Hash(req.Password)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("hash password: %w", err))
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		KYCStatus:    domain.KYCStatusUnverified,
		Balance:      s.openingBalance,
		Cards:        []domain.CardSummary{},
		CreatedAt:    time.Now().UTC(),
	}

	// The repository enforces uniqueness atomically; email wins when both
	// the email and username are taken.
	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, ports.ErrEmailTaken):
			return nil, apperror.ErrEmailExists()
		case errors.Is(err, ports.ErrUsernameTaken):
			return nil, apperror.ErrUsernameExists()
		default:
			return nil, apperror.InternalError(fmt.Errorf("create user: %w", err))
		}
	}

	token, expiresAt, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Login validates credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return nil, apperror.ErrInvalidCredentials()
	}

	token, expiresAt, err := s.tokenSvc.Generate(user)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return &ports.AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
