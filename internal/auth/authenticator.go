package auth

import (
	"context"

	"github.com/jonludena/friendbook/internal/models"
)

// Authenticator defines the interface for credential verification.
// This abstraction allows swapping between different auth methods (shared
// secret, per-account passwords, OAuth, etc.) without changing the API layer.
type Authenticator interface {
	// Authenticate verifies the credentials and returns the matching user.
	// Returns ErrInvalidCredentials when either the user does not exist or
	// the credential does not match; callers must not learn which.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)
}
