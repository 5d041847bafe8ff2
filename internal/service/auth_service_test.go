package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/internal/core/ports/mocks"
	"paymenu-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupAuthService(t *testing.T) (
	*AuthServiceImpl,
	*mocks.MockUserRepository,
	*mocks.MockHashService,
	*mocks.MockTokenService,
) {
	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	hashSvc := mocks.NewMockHashService(ctrl)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	svc := NewAuthService(userRepo, hashSvc, tokenSvc, decimal.NewFromInt(1000))
	return svc, userRepo, hashSvc, tokenSvc
}

func TestAuthService_Signup_Success(t *testing.T) {
	svc, userRepo, hashSvc, tokenSvc := setupAuthService(t)

	ctx := context.Background()
	req := ports.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	hashSvc.EXPECT().Hash(req.Password).Return("$2a$10$hashed", nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u *domain.User) error {
			assert.Equal(t, req.Username, u.Username)
			assert.Equal(t, req.Email, u.Email)
			assert.Equal(t, "$2a$10$hashed", u.PasswordHash)
			assert.Equal(t, domain.KYCStatusUnverified, u.KYCStatus)
			assert.True(t, u.Balance.Equal(decimal.NewFromInt(1000)))
			assert.NotNil(t, u.Cards)
			return nil
		})
	tokenSvc.EXPECT().Generate(gomock.Any()).Return("jwt_token", time.Now().Add(time.Hour), nil)

	result, err := svc.Signup(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "jwt_token", result.Token)
	assert.NotEqual(t, uuid.Nil, result.User.ID)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	svc, userRepo, hashSvc, _ := setupAuthService(t)

	ctx := context.Background()
	hashSvc.EXPECT().Hash(gomock.Any()).Return("$2a$10$hashed", nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).Return(ports.ErrEmailTaken)

	_, err := svc.Signup(ctx, ports.SignupRequest{
		Username: "alice", Email: "taken@example.com", Password: "password123",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_002", appErr.Code)
	assert.Equal(t, 409, appErr.HTTPStatus)
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	svc, userRepo, hashSvc, _ := setupAuthService(t)

	ctx := context.Background()
	hashSvc.EXPECT().Hash(gomock.Any()).Return("$2a$10$hashed", nil)
	userRepo.EXPECT().Create(ctx, gomock.Any()).Return(ports.ErrUsernameTaken)

	_, err := svc.Signup(ctx, ports.SignupRequest{
		Username: "taken", Email: "alice@example.com", Password: "password123",
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_003", appErr.Code)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo, hashSvc, tokenSvc := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hashed",
	}

	userRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(user, nil)
	hashSvc.EXPECT().Verify("password123", "$2a$10$hashed").Return(true, nil)
	tokenSvc.EXPECT().Generate(user).Return("jwt_token", time.Now().Add(time.Hour), nil)

	result, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "jwt_token", result.Token)
	assert.Equal(t, user, result.User)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, userRepo, _, _ := setupAuthService(t)

	ctx := context.Background()
	userRepo.EXPECT().GetByEmail(ctx, "nobody@example.com").Return(nil, nil)

	_, err := svc.Login(ctx, "nobody@example.com", "password123")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_001", appErr.Code)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo, hashSvc, _ := setupAuthService(t)

	ctx := context.Background()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hashed",
	}

	userRepo.EXPECT().GetByEmail(ctx, "alice@example.com").Return(user, nil)
	hashSvc.EXPECT().Verify("wrong", "$2a$10$hashed").Return(false, nil)

	_, err := svc.Login(ctx, "alice@example.com", "wrong")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "AUTH_001", appErr.Code)
}
