// Package common contains shared constants and sentinel errors used across
// the service components.
package common

// AuthCookieName is the HttpOnly cookie carrying the signed auth token that
// the request gate verifies.
const AuthCookieName = "auth_token"

// UserDataCookieName is the cookie carrying the signed public profile token
// handed to the client for display. It is never consulted by the request gate.
const UserDataCookieName = "user_data"
