package models

import "time"

// Session is one ledger row per successful login. The token string is the
// lookup key; LoginIP is the client origin observed at login. Expires is the
// server-controlled ledger expiry, independent of the expiry embedded in the
// token itself. Revocation past-dates Expires, the row is never deleted.
type Session struct {
	ID        string
	AccountID string
	Token     string
	LoginAt   time.Time
	LoginIP   string
	Expires   time.Time
}

// Live reports whether the ledger entry still admits requests from origin at
// the given instant: the recorded origin must match and the ledger expiry
// must not have passed. The token's own signature and embedded expiry are
// checked separately by the caller.
func (s *Session) Live(origin string, now time.Time) bool {
	return s.LoginIP == origin && now.Before(s.Expires)
}
