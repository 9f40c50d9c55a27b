package models

// Account roles. Tokens carry the role held at issuance.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a ledger participant. Balance is an integer amount in the
// smallest currency unit; it stays non-negative except when an admin
// adjustment explicitly sets a negative value.
type Account struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
	Balance      int64  `json:"balance"`
	Role         string `json:"role"`
}
