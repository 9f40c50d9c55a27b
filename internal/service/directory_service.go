package service

import (
	"context"

	"bearbank/internal/models"
	"bearbank/internal/repository"
)

// AccountSummary is the projection visible to any authenticated caller.
type AccountSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Balance  int64  `json:"balance"`
}

// DirectoryService serves read-only account views.
type DirectoryService struct {
	accounts repository.Accounts
}

func NewDirectoryService(accounts repository.Accounts) *DirectoryService {
	return &DirectoryService{accounts: accounts}
}

// Self returns the caller's own account.
func (s *DirectoryService) Self(ctx context.Context, id int) (*models.Account, error) {
	a, err := s.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrUserNotFound
	}
	return a, nil
}

// ListBasic returns all accounts without roles, in creation order.
func (s *DirectoryService) ListBasic(ctx context.Context) ([]AccountSummary, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountSummary{ID: a.ID, Username: a.Username, Balance: a.Balance})
	}
	return out, nil
}

// ListFull returns all accounts including roles. Admin view.
func (s *DirectoryService) ListFull(ctx context.Context) ([]models.Account, error) {
	return s.accounts.List(ctx)
}
