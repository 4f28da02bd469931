package models

import "time"

// Account is an identity record. Email is stored normalized (lowercase) and
// unique; the password hash and salt are the only credential material kept,
// never the password itself.
type Account struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Salt         string
	CreatedAt    time.Time
}

// Profile is the public subset of an Account handed to the client inside the
// user-data token.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Profile returns the account's public fields.
func (a *Account) Profile() Profile {
	return Profile{ID: a.ID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}
}

// FullName returns the display name used in outbound messages.
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}
