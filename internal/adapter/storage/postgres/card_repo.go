package postgres

import (
	"context"
	"fmt"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
)

// CardRepo implements ports.CardRepository.
type CardRepo struct {
	pool Pool
}

// NewCardRepo creates a new CardRepo.
func NewCardRepo(pool Pool) *CardRepo {
	return &CardRepo{pool: pool}
}

const cardColumns = `id, user_id, card_type, card_number_last_four, expiry_date, cvv, card_holder_name, status, requested_at`

// Create records an issued card.
func (r *CardRepo) Create(ctx context.Context, card *domain.Card) error {
	query := `INSERT INTO cards (id, user_id, card_type, card_number_last_four, expiry_date, cvv, card_holder_name, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		card.ID, card.UserID, card.CardType, card.CardNumberLastFour,
		card.ExpiryDate, card.CVV, card.CardHolderName, card.Status, card.RequestedAt,
	)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// ListByUser returns the account's cards in issuance order.
func (r *CardRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE user_id = $1 ORDER BY requested_at`
	return r.list(ctx, query, userID)
}

// ListAll returns every issued card in issuance order.
func (r *CardRepo) ListAll(ctx context.Context) ([]domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY requested_at`
	return r.list(ctx, query)
}

func (r *CardRepo) list(ctx context.Context, query string, args ...any) ([]domain.Card, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Card, 0)
	for rows.Next() {
		var c domain.Card
		err := rows.Scan(
			&c.ID, &c.UserID, &c.CardType, &c.CardNumberLastFour,
			&c.ExpiryDate, &c.CVV, &c.CardHolderName, &c.Status, &c.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return result, nil
}
