package hdr

import (
	"errors"
	"fmt"
)

// ErrInvalidSwitch is returned for a switch request with a bad profile or retry count.
var ErrInvalidSwitch = errors.New("invalid profile switch request")

// Switcher holds a pending profile switch request. The camera only listens for
// the switch signal during part of its cycle, so the signal is handed out
// once per frame until the retry count runs out.
type Switcher struct {
	target  ProfileID
	retries int
}

// RequestSwitch replaces any pending request with one for target.
func (s *Switcher) RequestSwitch(target ProfileID, retries int) error {
	if !target.Valid() {
		return fmt.Errorf("profile %d: %w", target, ErrInvalidSwitch)
	}
	if retries <= 0 {
		return fmt.Errorf("retries %d: %w", retries, ErrInvalidSwitch)
	}
	s.target = target
	s.retries = retries
	return nil
}

// PendingSignal returns the profile to signal for the current frame, if any,
// and consumes one retry.
func (s *Switcher) PendingSignal() (ProfileID, bool) {
	if s.retries <= 0 {
		return 0, false
	}
	target := s.target
	s.retries--
	if s.retries == 0 {
		s.target = 0
	}
	return target, true
}

// IsSwitching reports whether signals are still pending.
func (s *Switcher) IsSwitching() bool {
	return s.retries > 0
}

// Reset drops any pending request.
func (s *Switcher) Reset() {
	s.target = 0
	s.retries = 0
}
