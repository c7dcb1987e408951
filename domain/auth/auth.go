// Package auth holds the authentication entities and the capability the login use case consumes.
package auth

//go:generate mockgen -package authmock -destination authmock/authmock.go scenes/domain/auth Authenticator

import (
	"context"

	"go.llib.dev/frameless/port/crud"
)

type Credentials struct {
	Email    string
	Password string
}

type Account struct {
	Email        string `ext:"id"`
	Salt         []byte
	PasswordHash []byte
}

// Authenticator verifies Credentials.
// A false result with a nil error means the credentials were rejected.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (bool, error)
}

type AccountRepository interface {
	crud.Creator[Account]
	crud.ByIDFinder[Account, string]
}
