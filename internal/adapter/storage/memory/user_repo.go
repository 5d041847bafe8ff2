package memory

import (
	"context"
	"fmt"
	"sort"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepo implements ports.UserRepository over the shared store.
type UserRepo struct {
	store *Store
}

// NewUserRepo creates a UserRepo over the given store.
func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create inserts a new account. The uniqueness check and insert run under one
// lock acquisition; email is checked before username.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return ports.ErrEmailTaken
		}
	}
	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return ports.ErrUsernameTaken
		}
	}
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID fetches an account snapshot by id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return cloneUser(r.store.users[id]), nil
}

// GetByEmail fetches an account snapshot by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// GetByIdentifier fetches an account snapshot by exact email or username match.
func (r *UserRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByIdentifier(identifier), nil
}

// findByIdentifier scans without locking. Caller must hold mu.
func (r *UserRepo) findByIdentifier(identifier string) *domain.User {
	for _, u := range r.store.users {
		if u.Email == identifier || u.Username == identifier {
			return cloneUser(u)
		}
	}
	return nil
}

// GetByIDForUpdate fetches an account inside a transactional region.
// The Transactor already holds the store lock.
func (r *UserRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error) {
	return cloneUser(r.store.users[id]), nil
}

// UpdateBalance sets an account's balance inside a transactional region.
func (r *UserRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, id uuid.UUID, balance decimal.Decimal) error {
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.Balance = balance
	return nil
}

// SetVerification records the KYC outcome and detail for an account.
func (r *UserRepo) SetVerification(ctx context.Context, id uuid.UUID, status domain.KYCStatus, detail *domain.KYCDetail) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.KYCStatus = status
	if detail != nil {
		d := *detail
		u.KYCDetail = &d
	}
	return nil
}

// AppendCard adds a card summary to the account's own card list.
func (r *UserRepo) AppendCard(ctx context.Context, id uuid.UUID, card domain.CardSummary) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.Cards = append(u.Cards, card)
	return nil
}

// ListAll returns snapshots of every account, ordered by creation time.
func (r *UserRepo) ListAll(ctx context.Context) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	users := make([]domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		users = append(users, *cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}
