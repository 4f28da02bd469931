// Package resetcreds persists single-use password-reset credentials: the
// salted digest of the secret, never the secret itself. At most one row
// exists per account.
package resetcreds

import (
	"context"

	"github.com/webident/authcore/internal/server/models"
)

// Repository defines operations on outstanding reset credentials.
type Repository interface {
	// Insert stores a new credential row for the account.
	Insert(ctx context.Context, cred *models.ResetCredential) error

	// Find returns the outstanding credential for the account, or
	// common.ErrNotFound. Expiry is not evaluated here: an expired row is
	// inert until verification rejects it or issuance replaces it.
	Find(ctx context.Context, accountID string) (*models.ResetCredential, error)

	// Delete removes the outstanding credential for the account. Deleting a
	// non-existent credential is not an error.
	Delete(ctx context.Context, accountID string) error
}
