// Package memory implements the repository ports against process-local maps.
// It is the default storage driver: all state lives for the lifetime of the
// process and is lost on restart.
//
// A single store-wide RWMutex guards every collection. Transactor.Begin takes
// the write lock and hands out a tx whose Commit/Rollback releases it, so a
// transfer's read + conditional debit + credit runs as one atomic region.
// Repository methods that accept a pgx.Tx must only be called inside such a
// region and do not lock on their own; all other methods lock themselves.
package memory

import (
	"context"
	"sync"

	"paymenu-backend/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Store holds all in-process state shared by the repositories.
type Store struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]*domain.User
	transactions []domain.Transaction
	cards        []domain.Card
	seq          uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]*domain.User),
	}
}

// nextSeq returns the next ledger sequence number. Caller must hold mu.
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// cloneUser returns a snapshot safe to hand outside the lock.
func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.KYCDetail != nil {
		d := *u.KYCDetail
		c.KYCDetail = &d
	}
	c.Cards = append([]domain.CardSummary(nil), u.Cards...)
	return &c
}

// --- Transactor ---

// Transactor implements ports.Transactor by locking the whole store.
type Transactor struct {
	store *Store
}

// NewTransactor creates a Transactor over the given store.
func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

// Begin acquires the store write lock. The returned tx releases it exactly
// once, on Commit or Rollback, whichever comes first.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	t.store.mu.Lock()
	return &lockTx{store: t.store}, nil
}

// lockTx satisfies pgx.Tx so memory and Postgres adapters share the same
// ports. Only Commit and Rollback carry meaning here.
type lockTx struct {
	store *Store
	once  sync.Once
}

func (t *lockTx) release() {
	t.once.Do(t.store.mu.Unlock)
}

func (t *lockTx) Commit(ctx context.Context) error   { t.release(); return nil }
func (t *lockTx) Rollback(ctx context.Context) error { t.release(); return nil }

func (t *lockTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *lockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *lockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *lockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *lockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *lockTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *lockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *lockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *lockTx) Conn() *pgx.Conn                                               { return nil }
