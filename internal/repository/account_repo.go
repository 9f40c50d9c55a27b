package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bearbank/internal/models"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Ensure implementation of Accounts interface at compile time.
var _ Accounts = (*AccountRepository)(nil)

const (
	insertAccountSQL = `INSERT INTO accounts (username, password_hash) VALUES (?, ?)`
	insertSeededSQL  = `INSERT INTO accounts (username, password_hash, role, balance) VALUES (?, ?, ?, ?)`

	selectByUsernameSQL = `SELECT id, username, password_hash, balance, role FROM accounts WHERE username = ?`
	selectByIDSQL       = `SELECT id, username, password_hash, balance, role FROM accounts WHERE id = ?`
	selectAllSQL        = `SELECT id, username, password_hash, balance, role FROM accounts ORDER BY id`
	countAccountsSQL    = `SELECT COUNT(*) FROM accounts`

	setBalanceSQL = `UPDATE accounts SET balance = ? WHERE username = ?`

	selectBalanceForTransferSQL = `SELECT balance FROM accounts WHERE id = ?`
	debitSQL                    = `UPDATE accounts SET balance = balance - ? WHERE id = ?`
	creditSQL                   = `UPDATE accounts SET balance = balance + ? WHERE id = ?`
)

// isUniqueViolation matches the SQLite unique-constraint error for the
// username column without depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new account with default role and zero balance.
// A concurrent insert of the same username loses with ErrUsernameTaken;
// uniqueness is enforced by the database, not by a pre-check.
func (r *AccountRepository) Create(username, passwordHash string) (int, error) {
	res, err := r.db.Exec(insertAccountSQL, username, passwordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert account %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for account %q: %w", username, err)
	}
	return int(lastID), nil
}

// CreateSeeded inserts a bootstrap account with an explicit role and balance.
func (r *AccountRepository) CreateSeeded(username, passwordHash, role string, balance int64) (int, error) {
	res, err := r.db.Exec(insertSeededSQL, username, passwordHash, role, balance)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert seeded account %q: %w", username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for account %q: %w", username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches an account by username. Returns (nil, nil) if not found.
func (r *AccountRepository) GetByUsername(username string) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRow(selectByUsernameSQL, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Balance, &a.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account %q: %w", username, err)
	}
	return &a, nil
}

// GetByID fetches an account by id. Returns (nil, nil) if not found.
func (r *AccountRepository) GetByID(id int) (*models.Account, error) {
	var a models.Account
	err := r.db.QueryRow(selectByIDSQL, id).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Balance, &a.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select account id=%d: %w", id, err)
	}
	return &a, nil
}

// List returns all accounts in creation order.
func (r *AccountRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Balance, &a.Role); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countAccountsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

// SetBalance replaces an account's balance unconditionally.
func (r *AccountRepository) SetBalance(ctx context.Context, username string, balance int64) error {
	res, err := r.db.ExecContext(ctx, setBalanceSQL, balance, username)
	if err != nil {
		return fmt.Errorf("set balance for %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %q: %w", username, err)
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// Transfer moves amount from one account to the other inside a single
// transaction. The sender's balance is re-read under the transaction, so the
// funds check and both updates are indivisible with respect to any other
// transfer or adjustment touching either account. On any failure the
// transaction rolls back and neither balance changes.
func (r *AccountRepository) Transfer(ctx context.Context, fromID, toID int, amount int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var balance int64
	if err := tx.QueryRowContext(ctx, selectBalanceForTransferSQL, fromID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("read sender balance id=%d: %w", fromID, err)
	}
	if balance < amount {
		return ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx, debitSQL, amount, fromID); err != nil {
		return fmt.Errorf("debit account id=%d: %w", fromID, err)
	}
	if _, err := tx.ExecContext(ctx, creditSQL, amount, toID); err != nil {
		return fmt.Errorf("credit account id=%d: %w", toID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer tx: %w", err)
	}
	return nil
}
