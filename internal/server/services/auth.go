// Package services contains server-side business logic. This file implements
// AuthService: signup, login (password verification plus token minting and
// ledger recording), logout (ledger revocation), and the per-request
// admission decision all protected routes pass through.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/server/config"
	"github.com/webident/authcore/internal/server/models"
	"github.com/webident/authcore/internal/server/password"
	"github.com/webident/authcore/internal/server/repositories/repomanager"
	"github.com/webident/authcore/internal/server/token"
)

// TokenBundle carries the two cookies minted at login: the auth token the
// request gate verifies and the user-data token the client displays from.
type TokenBundle struct {
	AuthToken     string
	UserDataToken string
}

// AuthService provides authentication operations over the account store and
// the session ledger.
type AuthService struct {
	db             *sql.DB
	repos          repomanager.RepositoryManager
	authSecret     []byte
	userDataSecret []byte
	authTokenTTL   time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:             db,
		repos:          rm,
		authSecret:     []byte(cfg.AuthTokenSecret),
		userDataSecret: []byte(cfg.UserDataTokenSecret),
		authTokenTTL:   cfg.AuthTokenTTL,
	}
}

// Signup creates a new account with a freshly salted password hash.
// A duplicate email yields common.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, email, firstName, lastName, pw string) (*models.Account, error) {
	repo := s.repos.Accounts(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	salt, err := password.NewSalt()
	if err != nil {
		return nil, common.ErrInternal
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: password.Derive(pw, salt),
		Salt:         salt,
		CreatedAt:    time.Now(),
	}
	if _, err := repo.Create(ctx, account); err != nil {
		return nil, common.ErrInternal
	}
	return account, nil
}

// Login verifies the password for email and, on success, mints both token
// classes and records a ledger entry pinned to originAddress. Unknown
// accounts and wrong passwords are indistinguishable: both yield
// common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, pw, originAddress string) (*TokenBundle, error) {
	account, err := s.repos.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}
	if !password.Verify(pw, account.PasswordHash, account.Salt) {
		return nil, common.ErrInvalidCredentials
	}

	authToken, err := token.Mint(s.authSecret, account.Email, s.authTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}
	userDataToken, err := token.MintProfile(s.userDataSecret, account.Profile(), s.authTokenTTL)
	if err != nil {
		return nil, common.ErrInternal
	}

	// The ledger entry mirrors the token's own issue and expiry times at
	// login; afterwards the two expiries diverge (revocation past-dates the
	// ledger one).
	claims, err := token.Open(s.authSecret, authToken)
	if err != nil {
		return nil, common.ErrInternal
	}
	session := &models.Session{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Token:     authToken,
		LoginAt:   claims.IssuedAt.Time,
		LoginIP:   originAddress,
		Expires:   claims.ExpiresAt.Time,
	}
	if err := s.repos.Sessions(s.db).RecordLogin(ctx, session); err != nil {
		return nil, common.ErrInternal
	}

	return &TokenBundle{AuthToken: authToken, UserDataToken: userDataToken}, nil
}

// Logout revokes the ledger entry for the token. Unknown tokens are a no-op,
// not an error, so probing logout reveals nothing.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	if err := s.repos.Sessions(s.db).Revoke(ctx, tokenString); err != nil {
		return common.ErrInternal
	}
	return nil
}

// Admit is the request gate. It returns nil only when the token opens under
// the auth-class secret, its embedded expiry has not passed, and the ledger
// entry is live for originAddress at now. Every failed sub-check collapses
// to common.ErrUnauthorized so callers cannot learn which one failed; only
// store unavailability surfaces differently, as common.ErrInternal.
func (s *AuthService) Admit(ctx context.Context, tokenString, originAddress string, now time.Time) error {
	if tokenString == "" {
		return common.ErrUnauthorized
	}

	claims, err := token.Open(s.authSecret, tokenString)
	if err != nil {
		return common.ErrUnauthorized
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return common.ErrUnauthorized
	}

	session, err := s.repos.Sessions(s.db).Find(ctx, tokenString)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return common.ErrInternal
	}
	if !session.Live(originAddress, now) {
		return common.ErrUnauthorized
	}
	return nil
}
