package ports

import (
	"context"
	"errors"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Uniqueness sentinels returned by UserRepository.Create. The check-then-insert
// is atomic inside the repository (store lock in memory, unique constraints in
// Postgres), so callers only translate these into API errors.
var (
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username taken")
)

// UserRepository defines persistence operations for accounts.
// Lookups return (nil, nil) when no account matches.
// Methods accepting pgx.Tx run inside a transactional region obtained from
// Transactor.Begin and rely on its locking for atomicity.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIdentifier resolves an account by exact email or username match.
	GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error
	SetVerification(ctx context.Context, id uuid.UUID, status domain.KYCStatus, detail *domain.KYCDetail) error
	AppendCard(ctx context.Context, id uuid.UUID, card domain.CardSummary) error
	ListAll(ctx context.Context) ([]domain.User, error)
}

// TransactionRepository defines persistence for the append-only transfer ledger.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	// ListByUser returns all transactions where the account is sender or
	// recipient, sorted by timestamp descending, sequence descending on ties.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
}

// CardRepository defines persistence for the global card ledger.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Card, error)
	ListAll(ctx context.Context) ([]domain.Card, error)
}

// Transactor provides transactional regions for multi-step mutations.
// The Postgres implementation begins a database transaction; the memory
// implementation takes the store-wide lock and releases it on Commit/Rollback.
type Transactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
