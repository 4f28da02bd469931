// Package sessions provides the session ledger: one persistent row per
// login, binding an issued bearer token to the client origin observed at
// login and a server-controlled expiry. The ledger makes the otherwise
// stateless token revocable and origin-pinned.
package sessions

import (
	"context"
	"time"

	"github.com/webident/authcore/internal/server/models"
)

// RevokedExpiry is the sentinel past timestamp written by Revoke. A revoked
// row is textually distinguishable in storage from one that merely ran out,
// but verification treats both identically: expiry <= now is dead.
var RevokedExpiry = time.Unix(631170000, 0).UTC()

// Repository defines operations on the session ledger.
type Repository interface {
	// RecordLogin inserts a new ledger entry. Logins are never deduplicated
	// by account: concurrent sessions are independent rows.
	RecordLogin(ctx context.Context, session *models.Session) error

	// Find returns the ledger entry for the token string, the sole lookup
	// key. Unknown tokens return common.ErrNotFound.
	Find(ctx context.Context, tokenString string) (*models.Session, error)

	// Revoke forces the entry's expiry to RevokedExpiry. Idempotent, and a
	// no-op for unknown tokens so probing logout cannot reveal whether a
	// session ever existed.
	Revoke(ctx context.Context, tokenString string) error
}
