package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/microdecide/internal/ports/primary"
)

// AccountAdapter translates sign-in commands to AccountService calls.
type AccountAdapter struct {
	service primary.AccountService
	out     io.Writer
}

// NewAccountAdapter creates a new AccountAdapter.
func NewAccountAdapter(service primary.AccountService, out io.Writer) *AccountAdapter {
	return &AccountAdapter{service: service, out: out}
}

// Login signs in with email and returns the derived user id. Persisting
// the id is up to the caller.
func (a *AccountAdapter) Login(ctx context.Context, email string) (string, error) {
	userID, err := a.service.SignIn(ctx, email)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(a.out, "%s Signed in as %s\n", okColor.Sprint("✓"), userID)
	return userID, nil
}
