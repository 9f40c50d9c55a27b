package handlers

import (
	"context"

	"bearbank/internal/models"
	"bearbank/internal/service"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpAccount *models.Account
	signUpToken   string
	signUpErr     error
	signInAccount *models.Account
	signInToken   string
	signInErr     error
	parseIdentity *service.Identity
	parseErr      error
	seedErr       error

	lastSignUpUsername string
	lastSignInUsername string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (*models.Account, string, error) {
	m.lastSignUpUsername = username
	return m.signUpAccount, m.signUpToken, m.signUpErr
}

func (m *mockAuth) SignIn(username, password string) (*models.Account, string, error) {
	m.lastSignInUsername = username
	return m.signInAccount, m.signInToken, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (*service.Identity, error) {
	m.lastParseToken = token
	return m.parseIdentity, m.parseErr
}

func (m *mockAuth) Seed(ctx context.Context, accounts []service.SeedAccount) error {
	return m.seedErr
}

type mockLedger struct {
	transferErr error
	adjustErr   error

	transferCalls int
	adjustCalls   int

	lastFromID     int
	lastToUsername string
	lastAmount     int64
	lastAdjustUser string
	lastNewBalance int64
}

func (m *mockLedger) Transfer(ctx context.Context, fromID int, toUsername string, amount int64) error {
	m.transferCalls++
	m.lastFromID = fromID
	m.lastToUsername = toUsername
	m.lastAmount = amount
	return m.transferErr
}

func (m *mockLedger) AdjustBalance(ctx context.Context, username string, newBalance int64) error {
	m.adjustCalls++
	m.lastAdjustUser = username
	m.lastNewBalance = newBalance
	return m.adjustErr
}

type mockDirectory struct {
	selfAccount *models.Account
	selfErr     error
	basicList   []service.AccountSummary
	basicErr    error
	fullList    []models.Account
	fullErr     error
}

func (m *mockDirectory) Self(ctx context.Context, id int) (*models.Account, error) {
	return m.selfAccount, m.selfErr
}

func (m *mockDirectory) ListBasic(ctx context.Context) ([]service.AccountSummary, error) {
	return m.basicList, m.basicErr
}

func (m *mockDirectory) ListFull(ctx context.Context) ([]models.Account, error) {
	return m.fullList, m.fullErr
}
