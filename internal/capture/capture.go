package capture

import (
	"context"
	"errors"
)

// Camera session states. Every open starts a fresh session in
// StatePermissionPending; nothing carries over from a previous one.
const (
	StatePermissionPending = "permission-pending"
	StatePreviewing        = "previewing"
	StateCaptured          = "captured"
	StateCancelled         = "cancelled"
)

const (
	FlashOff = "off"
	FlashOn  = "on"

	FacingBack  = "back"
	FacingFront = "front"
)

// Quality applied to every captured frame.
const Quality = 0.8

var (
	ErrPermissionDenied = errors.New("camera permission denied")
	ErrNotPreviewing    = errors.New("camera is not previewing")
	ErrFrontNotAllowed  = errors.New("front camera is not available for this capture")
	ErrSessionClosed    = errors.New("capture session is closed")
)

// Session drives one camera interaction from permission prompt to a
// stored image. Selfie-style captures (allowFront) start on the front
// camera; document captures stay on the back one.
type Session struct {
	state      string
	flash      string
	facing     string
	allowFront bool

	store    ImageStore
	ImageURL string
}

func NewSession(store ImageStore, allowFront bool) *Session {
	facing := FacingBack
	if allowFront {
		facing = FacingFront
	}
	return &Session{
		state:      StatePermissionPending,
		flash:      FlashOff,
		facing:     facing,
		allowFront: allowFront,
		store:      store,
	}
}

func (s *Session) State() string  { return s.state }
func (s *Session) Flash() string  { return s.flash }
func (s *Session) Facing() string { return s.facing }

// GrantPermission moves the session into live preview.
func (s *Session) GrantPermission() error {
	if s.state != StatePermissionPending {
		return ErrSessionClosed
	}
	s.state = StatePreviewing
	return nil
}

// DenyPermission ends the session before preview ever starts.
func (s *Session) DenyPermission() error {
	if s.state != StatePermissionPending {
		return ErrSessionClosed
	}
	s.state = StateCancelled
	return ErrPermissionDenied
}

func (s *Session) ToggleFlash() (string, error) {
	if s.state != StatePreviewing {
		return s.flash, ErrNotPreviewing
	}
	if s.flash == FlashOff {
		s.flash = FlashOn
	} else {
		s.flash = FlashOff
	}
	return s.flash, nil
}

func (s *Session) SwitchFacing() (string, error) {
	if s.state != StatePreviewing {
		return s.facing, ErrNotPreviewing
	}
	if !s.allowFront {
		return s.facing, ErrFrontNotAllowed
	}
	if s.facing == FacingBack {
		s.facing = FacingFront
	} else {
		s.facing = FacingBack
	}
	return s.facing, nil
}

// Capture stores the frame and closes the session. The stored image url
// is kept on the session for the caller to collect.
func (s *Session) Capture(ctx context.Context, frame []byte, name string) (string, error) {
	if s.state != StatePreviewing {
		return "", ErrNotPreviewing
	}
	url, err := s.store.Store(ctx, frame, name)
	if err != nil {
		return "", err
	}
	s.ImageURL = url
	s.state = StateCaptured
	return url, nil
}

// Cancel abandons the session without capturing.
func (s *Session) Cancel() {
	if s.state == StatePermissionPending || s.state == StatePreviewing {
		s.state = StateCancelled
	}
}
