package models

import "time"

// ResetCredential is the outstanding password-reset secret for an account.
// Only the salted digest of the secret persists; the plaintext is returned
// once at issuance and never stored. At most one row exists per account.
type ResetCredential struct {
	AccountID  string
	SecretHash string
	Salt       string
	Expires    time.Time
}
