package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jonludena/friendbook/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserLookup defines the store operations the authenticator needs.
// This keeps the authenticator independent of the storage implementation.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// SharedSecretAuthenticator verifies logins against a single configured
// secret shared by all accounts.
//
// NOTE: per-account passwords are the intended end state; accounts are
// created without credentials today, so one deployment-wide secret gates
// every login until a credential column exists. The secret is bcrypt-hashed
// once at startup so it never sits in memory as plaintext longer than needed.
type SharedSecretAuthenticator struct {
	store      UserLookup
	secretHash []byte
}

// NewSharedSecretAuthenticator creates an authenticator gating all accounts
// behind one secret.
func NewSharedSecretAuthenticator(store UserLookup, secret string) (*SharedSecretAuthenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash shared secret: %w", err)
	}
	return &SharedSecretAuthenticator{store: store, secretHash: hash}, nil
}

// Authenticate verifies the username exists and the credential matches the
// shared secret. Both failure modes collapse into ErrInvalidCredentials.
func (a *SharedSecretAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(a.secretHash, []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
