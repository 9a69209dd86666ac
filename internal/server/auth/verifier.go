package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"golang.org/x/sync/semaphore"

	"github.com/avolkov/storefront/internal/common"
	"github.com/avolkov/storefront/internal/logging"
	"github.com/avolkov/storefront/internal/server/models"
)

// Result is the outcome of a credential check. Every failure cause yields
// the same zero Result; callers cannot tell an unknown user from a wrong
// password from malformed input.
type Result struct {
	Authenticated bool
	UserID        string
}

// CredentialStore is the read-only slice of user storage the verifier needs.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Verifier checks a submitted email/password pair against the store.
//
// Password verification is deliberately CPU-expensive, so concurrent checks
// are bounded by a semaphore; a burst of failed sign-in attempts queues here
// instead of starving the rest of the server.
type Verifier struct {
	store          CredentialStore
	hasher         PasswordHasher
	minPasswordLen int
	sem            *semaphore.Weighted
	logger         logging.Logger
}

func NewVerifier(store CredentialStore, hasher PasswordHasher, minPasswordLen, maxConcurrent int, logger logging.Logger) *Verifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Verifier{
		store:          store,
		hasher:         hasher,
		minPasswordLen: minPasswordLen,
		sem:            semaphore.NewWeighted(int64(maxConcurrent)),
		logger:         logger.With("component", "verifier"),
	}
}

// ValidCredentialShape reports whether the submitted credential is even
// worth a store lookup: the email must parse as an address and the password
// must meet the minimum length.
func ValidCredentialShape(email, password string, minPasswordLen int) bool {
	if len(password) < minPasswordLen {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// Verify checks the credential and returns a Result. Failures are data, not
// errors: a non-nil error means the store could not be reached (wrapped
// common.ErrStoreUnavailable) or the context ended while waiting for a
// verification slot.
func (v *Verifier) Verify(ctx context.Context, email, password string) (Result, error) {
	if !ValidCredentialShape(email, password, v.minPasswordLen) {
		// Same observable outcome as a wrong password; the distinction
		// exists only here.
		v.logger.Debug(ctx, "credential input failed shape validation")
		return Result{}, nil
	}

	if err := v.sem.Acquire(ctx, 1); err != nil {
		return Result{}, err
	}
	defer v.sem.Release(1)

	user, err := v.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Burn a hash verification so the unknown-user path takes as
			// long as the wrong-password path.
			v.hasher.Verify(password, dummyHash)
			v.logger.Debug(ctx, "sign-in attempt for unknown email")
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	if !v.hasher.Verify(password, user.PasswordHash) {
		v.logger.Debug(ctx, "password mismatch", "user_id", user.ID)
		return Result{}, nil
	}

	return Result{Authenticated: true, UserID: user.ID}, nil
}
