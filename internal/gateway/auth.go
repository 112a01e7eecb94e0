package gateway

import (
	"context"
	"errors"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
	// ErrEmailNotVerified is surfaced verbatim so the client can tell the
	// user to check their inbox.
	ErrEmailNotVerified = errors.New("Please verify your email before signing in. Check your inbox!")
)

// Account is the identity record held by the auth service.
type Account struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
}

// Authenticator is the identity side of the remote data gateway.
type Authenticator interface {
	CreateAccount(ctx context.Context, email, password, displayName string) (Account, error)
	// SignIn verifies credentials. Accounts with an unverified email fail
	// with ErrEmailNotVerified, which is equivalent to an immediate sign-out:
	// no session exists afterwards.
	SignIn(ctx context.Context, email, password string) (Account, error)
	SendVerificationEmail(ctx context.Context, uid string) error
	GetAccount(ctx context.Context, uid string) (Account, error)
	SignOut(ctx context.Context, uid string) error
}
