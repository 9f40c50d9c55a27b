package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bearbank/internal/models"
	"bearbank/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 8 * time.Hour

// Domain errors for auth flows. Unknown username and wrong password
// deliberately collapse into ErrInvalidCredentials so callers cannot
// enumerate users.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingFields      = errors.New("username and password are required")
)

// AuthService handles account creation, credential checks and tokens.
type AuthService struct {
	accounts   repository.Accounts
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(accounts repository.Accounts, cfg AuthConfig) *AuthService {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		accounts:   accounts,
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   ttl,
	}
}

// Claims defines the JWT claim set: subject id plus a snapshot of the
// username and role at issuance.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SignUp hashes the password, creates the account with default role and
// zero balance, and issues a token for it.
func (s *AuthService) SignUp(username, password string) (*models.Account, string, error) {
	if strings.TrimSpace(username) == "" {
		return nil, "", ErrMissingFields
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	id, err := s.accounts.Create(username, hash)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	acc := &models.Account{ID: id, Username: username, Balance: 0, Role: models.RoleUser}
	token, err := s.issueToken(acc)
	if err != nil {
		return nil, "", err
	}
	return acc, token, nil
}

// SignIn verifies credentials and returns the account with a fresh token.
func (s *AuthService) SignIn(username, password string) (*models.Account, string, error) {
	a, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if a == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(a.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(a)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// ParseToken verifies the signature and expiry and returns the embedded
// identity. The role is the one held when the token was issued; a role
// change after issuance does not apply until the account signs in again.
func (s *AuthService) ParseToken(accessToken string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

// Seed creates the configured bootstrap accounts when the store is empty.
func (s *AuthService) Seed(ctx context.Context, accounts []SeedAccount) error {
	n, err := s.accounts.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, sa := range accounts {
		hash, err := hashPassword(sa.Password)
		if err != nil {
			return fmt.Errorf("seed account %q: %w", sa.Username, err)
		}
		role := sa.Role
		if role == "" {
			role = models.RoleUser
		}
		if _, err := s.accounts.CreateSeeded(sa.Username, hash, role, sa.Balance); err != nil {
			return fmt.Errorf("seed account %q: %w", sa.Username, err)
		}
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrMissingFields
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for an account
func (s *AuthService) issueToken(a *models.Account) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   a.ID,
		Username: a.Username,
		Role:     a.Role,
	})
	return token.SignedString(s.signingKey)
}
