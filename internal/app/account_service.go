package app

import (
	"context"
	"errors"
	"strings"

	"github.com/example/microdecide/internal/ports/primary"
	"github.com/example/microdecide/internal/ports/secondary"
)

// ErrEmptyEmail is returned when signing in without an email.
var ErrEmptyEmail = errors.New("email is required")

// AccountServiceImpl implements the AccountService interface with a stub
// identity derived from the email address.
type AccountServiceImpl struct {
	tracker *Tracker
}

// NewAccountService creates a new AccountService.
func NewAccountService(tracker *Tracker) *AccountServiceImpl {
	return &AccountServiceImpl{tracker: tracker}
}

// UserIDFromEmail derives the stub user id for email.
func UserIDFromEmail(email string) string {
	return "user-" + strings.TrimSpace(email)
}

// SignIn returns the user id for email and records onboarding.
func (s *AccountServiceImpl) SignIn(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrEmptyEmail
	}
	userID := UserIDFromEmail(email)
	s.tracker.Track(ctx, secondary.EventOnboardingCompleted, map[string]any{"method": "email"})
	return userID, nil
}

// Ensure AccountServiceImpl implements the interface.
var _ primary.AccountService = (*AccountServiceImpl)(nil)
