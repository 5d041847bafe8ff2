package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// querier is the query surface shared by Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, username, email, password_hash, kyc_status, kyc_document_type, kyc_document_number, kyc_address, kyc_submitted_at, balance, created_at`

// Create inserts a new account. Uniqueness is enforced by the users_email_key
// and users_username_key constraints; violations map to the ports sentinels.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, kyc_status, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Username, u.Email, u.PasswordHash,
		u.KYCStatus, u.Balance.String(), u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ports.ErrEmailTaken
			}
			return ports.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches an account by its UUID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, r.pool, query, id)
}

// GetByEmail fetches an account by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, r.pool, query, email)
}

// GetByIdentifier fetches an account by exact email or username match.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR username = $1`
	return r.getOne(ctx, r.pool, query, identifier)
}

// GetByIDForUpdate fetches an account with a pessimistic row lock.
// Must be called within a transaction.
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, tx, query, id)
}

// UpdateBalance sets an account's balance within a transaction.
func (r *UserRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE users SET balance = $1 WHERE id = $2`
	tag, err := tx.Exec(ctx, query, balance.String(), id)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update balance: user not found: %s", id)
	}
	return nil
}

// SetVerification records the KYC outcome and detail for an account.
func (r *UserRepo) SetVerification(ctx context.Context, id uuid.UUID, status domain.KYCStatus, detail *domain.KYCDetail) error {
	query := `UPDATE users SET kyc_status = $1, kyc_document_type = $2, kyc_document_number = $3, kyc_address = $4, kyc_submitted_at = $5
		WHERE id = $6`

	var docType, docNumber, address *string
	var submittedAt *time.Time
	if detail != nil {
		docType = &detail.DocumentType
		docNumber = &detail.DocumentNumber
		address = &detail.Address
		submittedAt = &detail.SubmittedAt
	}

	_, err := r.pool.Exec(ctx, query, status, docType, docNumber, address, submittedAt, id)
	if err != nil {
		return fmt.Errorf("set verification: %w", err)
	}
	return nil
}

// AppendCard is a no-op for this driver: account card summaries are derived
// from the cards table on read.
func (r *UserRepo) AppendCard(ctx context.Context, id uuid.UUID, card domain.CardSummary) error {
	return nil
}

// ListAll returns every account, ordered by creation time.
func (r *UserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		if err := r.loadCardSummaries(ctx, r.pool, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// getOne runs a single-row user query and hydrates the card summary list.
func (r *UserRepo) getOne(ctx context.Context, q querier, query string, arg any) (*domain.User, error) {
	u, err := scanUser(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := r.loadCardSummaries(ctx, q, u); err != nil {
		return nil, err
	}
	return u, nil
}

// scanUser scans a user row in userColumns order.
func scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	var docType, docNumber, address *string
	var submittedAt *time.Time
	var balanceStr string

	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.KYCStatus, &docType, &docNumber, &address, &submittedAt,
		&balanceStr, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}
	u.Balance = balance

	if docType != nil && docNumber != nil && address != nil && submittedAt != nil {
		u.KYCDetail = &domain.KYCDetail{
			DocumentType:   *docType,
			DocumentNumber: *docNumber,
			Address:        *address,
			SubmittedAt:    *submittedAt,
		}
	}
	return u, nil
}

// loadCardSummaries hydrates the account's card list from the cards table.
func (r *UserRepo) loadCardSummaries(ctx context.Context, q querier, u *domain.User) error {
	query := `SELECT id, card_type, card_number_last_four, expiry_date FROM cards WHERE user_id = $1 ORDER BY requested_at`
	rows, err := q.Query(ctx, query, u.ID)
	if err != nil {
		return fmt.Errorf("load card summaries: %w", err)
	}
	defer rows.Close()

	u.Cards = make([]domain.CardSummary, 0)
	for rows.Next() {
		var s domain.CardSummary
		if err := rows.Scan(&s.ID, &s.CardType, &s.CardNumberLastFour, &s.ExpiryDate); err != nil {
			return fmt.Errorf("scan card summary: %w", err)
		}
		u.Cards = append(u.Cards, s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load card summaries: %w", err)
	}
	return nil
}
