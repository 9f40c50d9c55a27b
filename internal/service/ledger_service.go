package service

import (
	"context"
	"errors"
	"fmt"

	"bearbank/internal/repository"
)

// Domain errors for ledger operations, each a distinct failure mode.
var (
	ErrInvalidAmount     = errors.New("amount must be a positive integer")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransferFailed    = errors.New("transfer failed")
	ErrUserNotFound      = errors.New("user not found")
)

// LedgerService owns all balance mutation. Atomicity of the funds check and
// the two balance updates is delegated to the repository's transaction.
type LedgerService struct {
	accounts repository.Accounts
}

func NewLedgerService(accounts repository.Accounts) *LedgerService {
	return &LedgerService{accounts: accounts}
}

// Transfer debits the caller and credits the recipient, all or nothing.
// Validation order: amount, recipient existence, self-transfer, funds.
// The funds check runs inside the storage transaction, so two concurrent
// transfers draining the same sender cannot both pass it.
func (s *LedgerService) Transfer(ctx context.Context, fromID int, toUsername string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	to, err := s.accounts.GetByUsername(toUsername)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}
	if to == nil {
		return ErrRecipientNotFound
	}
	if to.ID == fromID {
		return ErrSelfTransfer
	}

	if err := s.accounts.Transfer(ctx, fromID, to.ID, amount); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return ErrInsufficientFunds
		case errors.Is(err, repository.ErrAccountNotFound):
			return ErrUserNotFound
		default:
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}
	}
	return nil
}

// AdjustBalance sets the target account's balance unconditionally. Negative
// values are allowed on purpose: this is the admin's mint/burn override and
// the non-negativity invariant does not apply to it.
func (s *LedgerService) AdjustBalance(ctx context.Context, username string, newBalance int64) error {
	if err := s.accounts.SetBalance(ctx, username, newBalance); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
