package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"paymenu-backend/internal/core/domain"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransferServiceImpl implements ports.TransferService.
type TransferServiceImpl struct {
	userRepo   ports.UserRepository
	txRepo     ports.TransactionRepository
	transactor ports.Transactor
	log        zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	userRepo ports.UserRepository,
	txRepo ports.TransactionRepository,
	transactor ports.Transactor,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		userRepo:   userRepo,
		txRepo:     txRepo,
		transactor: transactor,
		log:        log,
	}
}

// Transfer moves funds between two accounts with pessimistic locking.
// Precondition order is fixed: sender verification, amount, recipient
// resolution, self-transfer, then sufficient funds inside the locked region.
func (s *TransferServiceImpl) Transfer(ctx context.Context, req ports.TransferRequest) (*domain.Transaction, error) {
	sender, err := s.userRepo.GetByID(ctx, req.SenderID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find sender: %w", err))
	}
	if sender == nil {
		return nil, apperror.ErrInvalidToken()
	}
	if !sender.IsVerified() {
		return nil, apperror.ErrKYCRequired()
	}

	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	recipient, err := s.userRepo.GetByIdentifier(ctx, req.RecipientIdentifier)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("find recipient: %w", err))
	}
	if recipient == nil {
		return nil, apperror.ErrRecipientNotFound()
	}
	if recipient.ID == sender.ID {
		return nil, apperror.ErrSelfTransfer()
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock both rows in UUID order so concurrent opposing transfers
	// cannot deadlock.
	firstID, secondID := sender.ID, recipient.ID
	if bytes.Compare(secondID[:], firstID[:]) < 0 {
		firstID, secondID = secondID, firstID
	}

	first, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, firstID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	second, err := s.userRepo.GetByIDForUpdate(ctx, dbTx, secondID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock account: %w", err))
	}
	if first == nil || second == nil {
		return nil, apperror.ErrRecipientNotFound()
	}

	lockedSender, lockedRecipient := first, second
	if lockedSender.ID != sender.ID {
		lockedSender, lockedRecipient = second, first
	}

	// Business rule: sufficient funds, checked against the locked balance
	if lockedSender.Balance.LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	newSenderBalance := lockedSender.Balance.Sub(req.Amount)
	newRecipientBalance := lockedRecipient.Balance.Add(req.Amount)

	if err := s.userRepo.UpdateBalance(ctx, dbTx, lockedSender.ID, newSenderBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("debit sender: %w", err))
	}
	if err := s.userRepo.UpdateBalance(ctx, dbTx, lockedRecipient.ID, newRecipientBalance); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("credit recipient: %w", err))
	}

	txn := &domain.Transaction{
		ID:                uuid.New(),
		SenderID:          lockedSender.ID,
		SenderUsername:    lockedSender.Username,
		RecipientID:       lockedRecipient.ID,
		RecipientUsername: lockedRecipient.Username,
		Amount:            req.Amount,
		Currency:          req.Currency,
		Status:            domain.TransactionStatusCompleted,
		Timestamp:         time.Now().UTC(),
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create transaction: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("sender", txn.SenderUsername).
		Str("recipient", txn.RecipientUsername).
		Str("amount", req.Amount.String()).
		Str("currency", req.Currency).
		Msg("transfer completed")

	return txn, nil
}

// History returns the account's transfers, newest first.
func (s *TransferServiceImpl) History(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	txns, err := s.txRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}
	return txns, nil
}
