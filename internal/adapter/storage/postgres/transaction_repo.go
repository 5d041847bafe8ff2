package postgres

import (
	"context"
	"fmt"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, sender_id, sender_username, recipient_id, recipient_username, amount, currency, status, ts, seq`

// Create records a completed transfer within the given transaction.
// The seq column is a bigserial; the assigned value is read back so history
// ordering matches the in-memory driver.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, txn *domain.Transaction) error {
	query := `INSERT INTO transactions (id, sender_id, sender_username, recipient_id, recipient_username, amount, currency, status, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq`

	err := tx.QueryRow(ctx, query,
		txn.ID, txn.SenderID, txn.SenderUsername,
		txn.RecipientID, txn.RecipientUsername,
		txn.Amount.String(), txn.Currency, txn.Status, txn.Timestamp,
	).Scan(&txn.Sequence)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByUser returns transfers the account sent or received, newest first.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY ts DESC, seq DESC`
	return r.list(ctx, query, userID)
}

// ListAll returns the full transfer ledger, newest first.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY ts DESC, seq DESC`
	return r.list(ctx, query)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Transaction, 0)
	for rows.Next() {
		var txn domain.Transaction
		var amountStr string
		err := rows.Scan(
			&txn.ID, &txn.SenderID, &txn.SenderUsername,
			&txn.RecipientID, &txn.RecipientUsername,
			&amountStr, &txn.Currency, &txn.Status, &txn.Timestamp, &txn.Sequence,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		result = append(result, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return result, nil
}
