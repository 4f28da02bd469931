package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/dbx"
	"github.com/webident/authcore/internal/logging"
	"github.com/webident/authcore/internal/server/config"
	"github.com/webident/authcore/internal/server/mail"
	"github.com/webident/authcore/internal/server/models"
	"github.com/webident/authcore/internal/server/password"
	"github.com/webident/authcore/internal/server/repositories/repomanager"
)

// IssuedReset is the one-time result of issuing a reset credential: the
// plaintext secret (exposed only here, for the outbound message) and its
// expiry. Only the salted digest persists.
type IssuedReset struct {
	Secret  string
	Expires time.Time
}

// ResetService drives the reset-credential lifecycle: issue, verify, retire,
// plus the forgot-password request that mails the secret out.
type ResetService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	resetTTL      time.Duration
	mailer        mail.Mailer
	clientBaseURL string
	logger        logging.Logger
}

// NewResetService constructs a ResetService using repositories, the outbound
// mailer, and server config.
func NewResetService(db *sql.DB, rm repomanager.RepositoryManager, m mail.Mailer, cfg *config.Config, logger logging.Logger) *ResetService {
	return &ResetService{
		db:            db,
		repos:         rm,
		resetTTL:      cfg.ResetTokenTTL,
		mailer:        m,
		clientBaseURL: cfg.ClientBaseURL,
		logger:        logger,
	}
}

// Issue generates a fresh secret and salt, stores the digest, and
// transactionally replaces any prior outstanding credential for the account.
// Replacement invalidates a secret already sent to the user: accounts hold
// at most one live reset credential.
func (s *ResetService) Issue(ctx context.Context, accountID string) (*IssuedReset, error) {
	secret, err := password.NewResetSecret()
	if err != nil {
		return nil, common.ErrInternal
	}
	salt, err := password.NewSalt()
	if err != nil {
		return nil, common.ErrInternal
	}

	cred := &models.ResetCredential{
		AccountID:  accountID,
		SecretHash: password.Derive(secret, salt),
		Salt:       salt,
		Expires:    time.Now().Add(s.resetTTL),
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.ResetCredentials(tx)
		if err := repo.Delete(ctx, accountID); err != nil {
			return err
		}
		return repo.Insert(ctx, cred)
	})
	if err != nil {
		return nil, common.ErrInternal
	}

	return &IssuedReset{Secret: secret, Expires: cred.Expires}, nil
}

// Request handles a forgot-password call. Whether or not the account exists
// the caller sees the same outcome; when it does exist, a credential is
// issued and the secret mailed to the account's address.
func (s *ResetService) Request(ctx context.Context, email string) error {
	account, err := s.repos.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return common.ErrInternal
	}

	issued, err := s.Issue(ctx, account.ID)
	if err != nil {
		return common.ErrInternal
	}

	resetURL := fmt.Sprintf("%s/resetpassword?id=%s&token=%s",
		s.clientBaseURL, url.QueryEscape(account.ID), url.QueryEscape(issued.Secret))
	body, err := mail.RenderResetEmail(account.FullName(), resetURL, issued.Expires)
	if err != nil {
		return common.ErrInternal
	}
	if err := s.mailer.Send(ctx, account.Email, mail.ResetEmailSubject, body); err != nil {
		s.logger.Error(ctx, "reset mail send failed", "account_id", account.ID)
		return common.ErrInternal
	}
	return nil
}

// Verify reports whether candidate matches the outstanding credential for
// the account at now. Missing, wrong, and expired credentials are
// indistinguishable: all return false. The error return is reserved for
// store failure.
func (s *ResetService) Verify(ctx context.Context, accountID, candidate string, now time.Time) (bool, error) {
	cred, err := s.repos.ResetCredentials(s.db).Find(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, common.ErrInternal
	}
	if !password.Verify(candidate, cred.SecretHash, cred.Salt) {
		return false, nil
	}
	if !now.Before(cred.Expires) {
		return false, nil
	}
	return true, nil
}

// Reset verifies the secret and, inside one transaction, installs a new
// password hash and salt and retires the credential so it cannot be reused.
func (s *ResetService) Reset(ctx context.Context, accountID, secret, newPassword string) error {
	ok, err := s.Verify(ctx, accountID, secret, time.Now())
	if err != nil {
		return common.ErrInternal
	}
	if !ok {
		return common.ErrInvalidCredentials
	}

	salt, err := password.NewSalt()
	if err != nil {
		return common.ErrInternal
	}
	hash := password.Derive(newPassword, salt)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.Accounts(tx).UpdatePassword(ctx, accountID, hash, salt); err != nil {
			return err
		}
		return s.repos.ResetCredentials(tx).Delete(ctx, accountID)
	})
	if err != nil {
		return common.ErrInternal
	}
	return nil
}

// Retire deletes the outstanding credential for the account.
func (s *ResetService) Retire(ctx context.Context, accountID string) error {
	if err := s.repos.ResetCredentials(s.db).Delete(ctx, accountID); err != nil {
		return common.ErrInternal
	}
	return nil
}
