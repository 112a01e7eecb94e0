package gateway

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type memAccount struct {
	Account
	passwordHash []byte
}

// InMemoryAuthenticator keeps accounts in memory with bcrypt-hashed
// passwords. Used by tests and credential-less local runs.
type InMemoryAuthenticator struct {
	mu       sync.RWMutex
	accounts map[string]*memAccount // uid -> account
	byEmail  map[string]string      // email -> uid
	nextID   int

	// VerificationSent records uids a verification email was "sent" to.
	VerificationSent []string
}

func NewInMemoryAuthenticator() *InMemoryAuthenticator {
	return &InMemoryAuthenticator{
		accounts: make(map[string]*memAccount),
		byEmail:  make(map[string]string),
		nextID:   1,
	}
}

func (a *InMemoryAuthenticator) CreateAccount(ctx context.Context, email, password, displayName string) (Account, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byEmail[email]; ok {
		return Account{}, ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	uid := fmt.Sprintf("uid%04d", a.nextID)
	a.nextID++
	acc := &memAccount{
		Account:      Account{UID: uid, Email: email, DisplayName: displayName},
		passwordHash: hashed,
	}
	a.accounts[uid] = acc
	a.byEmail[email] = uid
	return acc.Account, nil
}

func (a *InMemoryAuthenticator) SignIn(ctx context.Context, email, password string) (Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	uid, ok := a.byEmail[email]
	if !ok {
		return Account{}, ErrInvalidCredentials
	}
	acc := a.accounts[uid]
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return Account{}, ErrInvalidCredentials
	}
	if !acc.EmailVerified {
		return Account{}, ErrEmailNotVerified
	}
	return acc.Account, nil
}

func (a *InMemoryAuthenticator) SendVerificationEmail(ctx context.Context, uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.accounts[uid]; !ok {
		return ErrAccountNotFound
	}
	a.VerificationSent = append(a.VerificationSent, uid)
	return nil
}

func (a *InMemoryAuthenticator) GetAccount(ctx context.Context, uid string) (Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	acc, ok := a.accounts[uid]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc.Account, nil
}

func (a *InMemoryAuthenticator) SignOut(ctx context.Context, uid string) error {
	return nil
}

// GetAccountByEmail is a test helper for looking up the generated uid.
func (a *InMemoryAuthenticator) GetAccountByEmail(email string) (Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	uid, ok := a.byEmail[email]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return a.accounts[uid].Account, nil
}

// MarkVerified flips the verified flag, standing in for the user clicking
// the emailed link.
func (a *InMemoryAuthenticator) MarkVerified(uid string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	acc, ok := a.accounts[uid]
	if !ok {
		return ErrAccountNotFound
	}
	acc.EmailVerified = true
	return nil
}
