package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paymenu-backend/internal/adapter/http/dto"
	"paymenu-backend/internal/adapter/http/middleware"
	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/internal/core/ports/mocks"
	"paymenu-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Auth Handler ---

func TestSignup_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	user := &domain.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		KYCStatus: domain.KYCStatusUnverified,
		Balance:   decimal.NewFromInt(1000),
		Cards:     []domain.CardSummary{},
	}
	mockAuth.EXPECT().Signup(gomock.Any(), ports.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}).Return(&ports.AuthResult{
		Token:     "jwt_token",
		ExpiresAt: time.Now().Add(time.Hour),
		User:      user,
	}, nil)

	c, w := testContext(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	h.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "User registered. Please complete KYC.", resp["message"])
	assert.Equal(t, "jwt_token", resp["token"])
	userBody := resp["user"].(map[string]interface{})
	assert.Equal(t, "alice", userBody["username"])
	assert.Equal(t, "unverified", userBody["kycStatus"])
	// Password hash never serialized
	_, present := userBody["passwordHash"]
	assert.False(t, present)
}

func TestSignup_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewAuthHandler(mocks.NewMockAuthService(ctrl))

	// Password below minimum length
	c, w := testContext(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "short",
	})
	h.Signup(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "VAL_001", resp["error_code"])
}

func TestSignup_EmailConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Signup(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEmailExists())

	c, w := testContext(t, http.MethodPost, "/auth/signup", dto.SignupRequest{
		Username: "alice", Email: "taken@example.com", Password: "password123",
	})
	h.Signup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "AUTH_002", resp["error_code"])
}

func TestLogin_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	user := &domain.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	mockAuth.EXPECT().Login(gomock.Any(), "alice@example.com", "password123").
		Return(&ports.AuthResult{Token: "jwt_token", User: user}, nil)

	c, w := testContext(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Login successful.", resp["message"])
	assert.Equal(t, "jwt_token", resp["token"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAuth := mocks.NewMockAuthService(ctrl)
	h := NewAuthHandler(mockAuth)

	mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInvalidCredentials())

	c, w := testContext(t, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email: "alice@example.com", Password: "wrong1",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- KYC Handler ---

func authedContext(t *testing.T, method, path string, body any, user *domain.User) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := testContext(t, method, path, body)
	c.Set(middleware.CtxUserID, user.ID)
	c.Set(middleware.CtxUser, user)
	return c, w
}

func TestKYCSubmit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockKYC := mocks.NewMockKYCService(ctrl)
	h := NewKYCHandler(mockKYC)

	user := &domain.User{ID: uuid.New(), Username: "alice"}
	detail := &domain.KYCDetail{
		DocumentType:   "passport",
		DocumentNumber: "A1234567",
		Address:        "1 Main St",
		SubmittedAt:    time.Now().UTC(),
	}
	mockKYC.EXPECT().Submit(gomock.Any(), user.ID, ports.KYCSubmission{
		DocumentType: "passport", DocumentNumber: "A1234567", Address: "1 Main St",
	}).Return(domain.KYCStatusVerified, detail, nil)

	c, w := authedContext(t, http.MethodPost, "/kyc/submit", dto.KYCSubmitRequest{
		DocumentType: "passport", DocumentNumber: "A1234567", Address: "1 Main St",
	}, user)
	h.Submit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "verified", resp["kycStatus"])
	data := resp["kycData"].(map[string]interface{})
	assert.Equal(t, "passport", data["documentType"])
}

func TestKYCSubmit_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewKYCHandler(mocks.NewMockKYCService(ctrl))

	user := &domain.User{ID: uuid.New()}
	c, w := authedContext(t, http.MethodPost, "/kyc/submit", dto.KYCSubmitRequest{
		DocumentType: "passport",
	}, user)
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "KYC_001", resp["error_code"])
}

func TestKYCStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockKYC := mocks.NewMockKYCService(ctrl)
	h := NewKYCHandler(mockKYC)

	user := &domain.User{ID: uuid.New()}
	mockKYC.EXPECT().Status(gomock.Any(), user.ID).
		Return(domain.KYCStatusUnverified, nil, nil)

	c, w := authedContext(t, http.MethodGet, "/kyc/status", nil, user)
	h.Status(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "unverified", resp["kycStatus"])
	assert.Equal(t, user.ID.String(), resp["userId"])
	assert.Nil(t, resp["kycData"])
}

// --- User Handler ---

func TestProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewUserHandler(mocks.NewMockTransferService(ctrl), mocks.NewMockCardService(ctrl))

	user := &domain.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Balance:  decimal.NewFromInt(1000),
	}
	c, w := authedContext(t, http.MethodGet, "/user/profile", nil, user)
	h.Profile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "alice", data["username"])
}

func TestTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTransfer := mocks.NewMockTransferService(ctrl)
	h := NewUserHandler(mockTransfer, mocks.NewMockCardService(ctrl))

	user := &domain.User{ID: uuid.New()}
	mockTransfer.EXPECT().History(gomock.Any(), user.ID).Return([]domain.Transaction{
		{ID: uuid.New(), SenderID: user.ID, Amount: decimal.NewFromInt(50), Currency: "USD"},
	}, nil)

	c, w := authedContext(t, http.MethodGet, "/user/transactions", nil, user)
	h.Transactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	txns := resp["transactions"].([]interface{})
	assert.Len(t, txns, 1)
}

// --- Transfer Handler ---

func TestTransferSend_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTransfer := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockTransfer)

	user := &domain.User{ID: uuid.New(), Username: "alice"}
	txn := &domain.Transaction{
		ID:                uuid.New(),
		SenderID:          user.ID,
		SenderUsername:    "alice",
		RecipientUsername: "bob",
		Amount:            decimal.NewFromInt(100),
		Currency:          "USD",
		Status:            domain.TransactionStatusCompleted,
	}
	mockTransfer.EXPECT().Transfer(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
			assert.Equal(t, user.ID, req.SenderID)
			assert.Equal(t, "bob", req.RecipientIdentifier)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)))
			return txn, nil
		})

	c, w := authedContext(t, http.MethodPost, "/transfers/send", dto.TransferRequest{
		RecipientIdentifier: "bob",
		Amount:              decimal.NewFromInt(100),
		Currency:            "USD",
	}, user)
	h.Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Transfer successful.", resp["message"])
	body := resp["transaction"].(map[string]interface{})
	assert.Equal(t, "completed", body["status"])
}

func TestTransferSend_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockTransfer := mocks.NewMockTransferService(ctrl)
	h := NewTransferHandler(mockTransfer)

	mockTransfer.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientBalance())

	user := &domain.User{ID: uuid.New()}
	c, w := authedContext(t, http.MethodPost, "/transfers/send", dto.TransferRequest{
		RecipientIdentifier: "bob",
		Amount:              decimal.NewFromInt(5000),
		Currency:            "USD",
	}, user)
	h.Send(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "TRF_004", resp["error_code"])
}

// --- Card Handler ---

func TestCardIssue_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCard := mocks.NewMockCardService(ctrl)
	h := NewCardHandler(mockCard)

	user := &domain.User{ID: uuid.New()}
	card := &domain.Card{
		ID:                 uuid.New(),
		UserID:             user.ID,
		CardType:           domain.CardNetworkVisa,
		CardNumberLastFour: "4242",
		ExpiryDate:         "09/29",
		CVV:                "123",
		CardHolderName:     "Valued Customer",
		Status:             domain.CardStatusIssued,
	}
	mockCard.EXPECT().Issue(gomock.Any(), user.ID, "VISA").Return(card, nil)

	c, w := authedContext(t, http.MethodPost, "/cards/issue", dto.CardIssueRequest{CardType: "VISA"}, user)
	h.Issue(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "VISA card issued successfully.", resp["message"])
	body := resp["card"].(map[string]interface{})
	assert.Equal(t, "4242", body["cardNumberLastFour"])
	assert.Equal(t, "123", body["cvv"])
}

func TestCardIssue_InvalidType(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCard := mocks.NewMockCardService(ctrl)
	h := NewCardHandler(mockCard)

	mockCard.EXPECT().Issue(gomock.Any(), gomock.Any(), "AMEX").
		Return(nil, apperror.ErrInvalidCardType())

	user := &domain.User{ID: uuid.New()}
	c, w := authedContext(t, http.MethodPost, "/cards/issue", dto.CardIssueRequest{CardType: "AMEX"}, user)
	h.Issue(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "CARD_001", resp["error_code"])
}

// --- Health ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(ctx context.Context) error { return s.err }
func (s stubChecker) Name() string                   { return s.name }

func TestHealthCheck_NoCheckers(t *testing.T) {
	c, w := testContext(t, http.MethodGet, "/health", nil)
	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "UP", resp["status"])
	assert.NotEmpty(t, resp["timestamp"])
	assert.Nil(t, resp["dependencies"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	c, w := testContext(t, http.MethodGet, "/health", nil)
	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis", err: assert.AnError})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "DEGRADED", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "healthy", deps["postgresql"].(map[string]interface{})["status"])
	assert.Equal(t, "unhealthy", deps["redis"].(map[string]interface{})["status"])
}
