package repository

import (
	"context"
	"database/sql"
	"errors"

	"bearbank/internal/models"
	"bearbank/internal/repository/db"
)

// InitDB opens the SQLite store and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

// Sentinel errors surfaced by the account repository. Services translate
// these into their own domain errors.
var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type Accounts interface {
	Create(username, passwordHash string) (int, error)
	CreateSeeded(username, passwordHash, role string, balance int64) (int, error)
	GetByUsername(username string) (*models.Account, error)
	GetByID(id int) (*models.Account, error)
	List(ctx context.Context) ([]models.Account, error)
	Count(ctx context.Context) (int, error)
	SetBalance(ctx context.Context, username string, balance int64) error
	Transfer(ctx context.Context, fromID, toID int, amount int64) error
}

type Repository struct {
	Accounts Accounts
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Accounts: NewAccountRepository(db),
	}
}
