package ports

import (
	"context"
	"time"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HashService handles password hashing.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(user *domain.User) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID   uuid.UUID
	Email    string
	Username string
}

// KYCVerifier decides the verification outcome for a submitted detail record.
// The wired implementation approves synchronously; a real adjudication step
// can be substituted without changing the transfer or card call sites.
type KYCVerifier interface {
	Review(ctx context.Context, user *domain.User, detail domain.KYCDetail) (domain.KYCStatus, error)
}

// --- Service Ports (Business Logic) ---

// AuthService defines signup and login.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// SignupRequest holds validated input for account creation.
type SignupRequest struct {
	Username string
	Email    string
	Password string
}

// AuthResult pairs a bearer token with the authenticated account.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// KYCService defines the verification gate.
type KYCService interface {
	Submit(ctx context.Context, userID uuid.UUID, req KYCSubmission) (domain.KYCStatus, *domain.KYCDetail, error)
	Status(ctx context.Context, userID uuid.UUID) (domain.KYCStatus, *domain.KYCDetail, error)
}

// KYCSubmission holds the document fields for a verification request.
type KYCSubmission struct {
	DocumentType   string
	DocumentNumber string
	Address        string
}

// TransferService defines the balance-conserving ledger operations.
type TransferService interface {
	Transfer(ctx context.Context, req TransferRequest) (*domain.Transaction, error)
	History(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
}

// TransferRequest holds validated input for a transfer.
type TransferRequest struct {
	SenderID            uuid.UUID
	RecipientIdentifier string
	Amount              decimal.Decimal
	Currency            string
}

// CardService defines mock card issuance.
type CardService interface {
	Issue(ctx context.Context, userID uuid.UUID, cardType string) (*domain.Card, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.CardSummary, error)
}
