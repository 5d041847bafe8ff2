package memory

import (
	"context"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
)

// CardRepo implements ports.CardRepository over the shared store.
type CardRepo struct {
	store *Store
}

// NewCardRepo creates a CardRepo over the given store.
func NewCardRepo(store *Store) *CardRepo {
	return &CardRepo{store: store}
}

// Create appends a card to the global card ledger.
func (r *CardRepo) Create(ctx context.Context, card *domain.Card) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.cards = append(r.store.cards, *card)
	return nil
}

// ListByUser returns the account's cards in issuance order.
func (r *CardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Card, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	result := make([]domain.Card, 0)
	for _, c := range r.store.cards {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ListAll returns the full card ledger in issuance order.
func (r *CardRepo) ListAll(ctx context.Context) ([]domain.Card, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]domain.Card(nil), r.store.cards...), nil
}
