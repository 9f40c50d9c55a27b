package service

import (
	"context"
	"time"

	"bearbank/internal/models"
	"bearbank/internal/repository"
)

// Identity is the verified claim set extracted from a bearer token.
// Role reflects the account's role at issuance time.
type Identity struct {
	UserID   int
	Username string
	Role     string
}

// SeedAccount is a bootstrap account from configuration.
type SeedAccount struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Role     string `mapstructure:"role"`
	Balance  int64  `mapstructure:"balance"`
}

type Authorization interface {
	SignUp(username, password string) (*models.Account, string, error)
	SignIn(username, password string) (*models.Account, string, error)
	ParseToken(accessToken string) (*Identity, error)
	Seed(ctx context.Context, accounts []SeedAccount) error
}

// Ledger performs the two balance mutations: the conditional transfer and
// the unconditional admin adjustment.
type Ledger interface {
	Transfer(ctx context.Context, fromID int, toUsername string, amount int64) error
	AdjustBalance(ctx context.Context, username string, newBalance int64) error
}

// Directory exposes read-only account projections.
type Directory interface {
	Self(ctx context.Context, id int) (*models.Account, error)
	ListBasic(ctx context.Context) ([]AccountSummary, error)
	ListFull(ctx context.Context) ([]models.Account, error)
}

type Service struct {
	Authorization
	Ledger
	Directory
}

// AuthConfig carries the token-signing settings from configuration.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Accounts, auth),
		Ledger:        NewLedgerService(repos.Accounts),
		Directory:     NewDirectoryService(repos.Accounts),
	}
}
