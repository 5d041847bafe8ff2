package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cardHolderName is the placeholder printed on every mock card.
const cardHolderName = "Valued Customer"

// CardServiceImpl implements ports.CardService.
type CardServiceImpl struct {
	userRepo ports.UserRepository
	cardRepo ports.CardRepository
	log      zerolog.Logger
}

// NewCardService creates a new CardServiceImpl.
func NewCardService(userRepo ports.UserRepository, cardRepo ports.CardRepository, log zerolog.Logger) *CardServiceImpl {
	return &CardServiceImpl{
		userRepo: userRepo,
		cardRepo: cardRepo,
		log:      log,
	}
}

// Issue creates a mock card for a verified account. Issuance is synchronous
// and the card details carry no real PAN, only randomized display fields.
func (s *CardServiceImpl) Issue(ctx context.Context, userID uuid.UUID, cardType string) (*domain.Card, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken()
	}
	if !user.IsVerified() {
		return nil, apperror.ErrKYCRequired()
	}

	network, ok := domain.ParseCardNetwork(cardType)
	if !ok {
		return nil, apperror.ErrInvalidCardType()
	}

	card := &domain.Card{
		ID:                 uuid.New(),
		UserID:             user.ID,
		CardType:           network,
		CardNumberLastFour: fmt.Sprintf("%04d", 1000+rand.IntN(9000)),
		ExpiryDate:         mockExpiryDate(time.Now()),
		CVV:                fmt.Sprintf("%03d", 100+rand.IntN(900)),
		CardHolderName:     cardHolderName,
		Status:             domain.CardStatusIssued,
		RequestedAt:        time.Now().UTC(),
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create card: %w", err))
	}

	// Mirror the CVV-free summary onto the owning account.
	if err := s.userRepo.AppendCard(ctx, user.ID, card.Summary()); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append card summary: %w", err))
	}

	s.log.Info().
		Str("card_id", card.ID.String()).
		Str("user_id", user.ID.String()).
		Str("card_type", string(network)).
		Msg("card issued")

	return card, nil
}

// List returns the CVV-free summaries of the account's cards.
func (s *CardServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]domain.CardSummary, error) {
	cards, err := s.cardRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list cards: %w", err))
	}

	summaries := make([]domain.CardSummary, 0, len(cards))
	for i := range cards {
		summaries = append(summaries, cards[i].Summary())
	}
	return summaries, nil
}

// mockExpiryDate returns a random MM/YY date 3 to 5 years out.
func mockExpiryDate(now time.Time) string {
	month := 1 + rand.IntN(12)
	year := (now.Year() + 3 + rand.IntN(3)) % 100
	return fmt.Sprintf("%02d/%02d", month, year)
}
