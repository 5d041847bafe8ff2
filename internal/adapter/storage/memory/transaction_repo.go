package memory

import (
	"context"
	"sort"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository over the shared store.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a TransactionRepo over the given store.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create appends a ledger entry inside a transactional region and assigns its
// sequence number. The Transactor already holds the store lock.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	t.Sequence = r.store.nextSeq()
	r.store.transactions = append(r.store.transactions, *t)
	return nil
}

// ListByUser returns every transaction involving the account, most recent
// first; ties on timestamp are broken by sequence.
func (r *TransactionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make([]domain.Transaction, 0)
	for _, t := range r.store.transactions {
		if t.Involves(userID) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].Sequence > result[j].Sequence
	})
	return result, nil
}

// ListAll returns the full ledger in append order.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Transaction(nil), r.store.transactions...), nil
}
