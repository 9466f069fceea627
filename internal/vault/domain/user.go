package domain

import "time"

// User is the operator account that logs into the vault.
type User struct {
	ID           string
	Username     string
	Password     string  // argon2id encoded, or field cipher output for imported users
	TwoFASecret  *string // field cipher output of the base32 secret (nullable)
	TwoFAEnabled bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
