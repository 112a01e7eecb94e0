package user

import (
	"context"
	"errors"
	"time"

	"github.com/makaziyangu/makazi-backend/internal/gateway"
)

// AuthListener is notified of auth-state changes. The session context
// subscribes at startup; nothing else writes session state.
type AuthListener interface {
	SignedIn(acc gateway.Account, p Profile)
	SignedOut(uid string)
	ProfileMerged(uid string, p Profile)
}

type Service struct {
	auth      gateway.Authenticator
	repo      Repository
	listeners []AuthListener
	now       func() time.Time
}

func NewService(auth gateway.Authenticator, repo Repository) *Service {
	return &Service{auth: auth, repo: repo, now: time.Now}
}

// Subscribe registers a listener for auth-state changes.
func (s *Service) Subscribe(l AuthListener) {
	s.listeners = append(s.listeners, l)
}

// Register creates the auth account, sends the verification email and writes
// the profile document with its defaults (not a landlord, not verified).
func (s *Service) Register(ctx context.Context, email, password, name string) (Profile, error) {
	acc, err := s.auth.CreateAccount(ctx, email, password, name)
	if err != nil {
		return Profile{}, err
	}

	if err := s.auth.SendVerificationEmail(ctx, acc.UID); err != nil {
		return Profile{}, err
	}

	profile := Profile{
		UID:        acc.UID,
		Name:       name,
		Email:      email,
		IsLandlord: false,
		IsVerified: false,
		Avatar:     AvatarURL(name),
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// SignIn authenticates against the gateway. Unverified accounts fail with
// gateway.ErrEmailNotVerified and no session is established.
func (s *Service) SignIn(ctx context.Context, email, password string) (gateway.Account, Profile, error) {
	acc, err := s.auth.SignIn(ctx, email, password)
	if err != nil {
		return gateway.Account{}, Profile{}, err
	}

	profile, err := s.repo.Get(ctx, acc.UID)
	if errors.Is(err, ErrNotFound) {
		// profile doc missing; fall back to what the auth record knows
		profile = Profile{UID: acc.UID, Name: acc.DisplayName, Email: acc.Email}
	} else if err != nil {
		return gateway.Account{}, Profile{}, err
	}

	for _, l := range s.listeners {
		l.SignedIn(acc, profile)
	}
	return acc, profile, nil
}

func (s *Service) SignOut(ctx context.Context, uid string) error {
	if err := s.auth.SignOut(ctx, uid); err != nil {
		return err
	}
	for _, l := range s.listeners {
		l.SignedOut(uid)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, uid string) (Profile, error) {
	return s.repo.Get(ctx, uid)
}

// ApplyLandlord merges the landlord-registration update into the profile
// document and mirrors the result into the session context via listeners.
// The merge-write makes re-submission idempotent.
func (s *Service) ApplyLandlord(ctx context.Context, uid string, update gateway.Fields) (Profile, error) {
	update["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	if err := s.repo.Merge(ctx, uid, update); err != nil {
		return Profile{}, err
	}

	profile, err := s.repo.Get(ctx, uid)
	if err != nil {
		return Profile{}, err
	}
	for _, l := range s.listeners {
		l.ProfileMerged(uid, profile)
	}
	return profile, nil
}
