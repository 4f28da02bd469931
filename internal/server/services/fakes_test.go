package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/dbx"
	"github.com/webident/authcore/internal/server/config"
	"github.com/webident/authcore/internal/server/models"
	accountsrepo "github.com/webident/authcore/internal/server/repositories/accounts"
	resetcredsrepo "github.com/webident/authcore/internal/server/repositories/resetcreds"
	sessionsrepo "github.com/webident/authcore/internal/server/repositories/sessions"
)

// --- in-memory fakes backing the service tests ---

type fakeAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account

	getErr    error
	createErr error
	updateErr error
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{
		byEmail: map[string]*models.Account{},
		byID:    map[string]*models.Account{},
	}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *a
	f.byEmail[a.Email] = &cp
	f.byID[a.ID] = &cp
	return a, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAccountsRepo) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil
	}
	a.PasswordHash = hash
	a.Salt = salt
	return nil
}

type fakeSessionsRepo struct {
	byToken map[string]*models.Session

	recordErr error
	findErr   error
	revokeErr error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{byToken: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) RecordLogin(ctx context.Context, s *models.Session) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	cp := *s
	f.byToken[s.Token] = &cp
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, tok string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byToken[tok]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionsRepo) Revoke(ctx context.Context, tok string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	if s, ok := f.byToken[tok]; ok {
		s.Expires = sessionsrepo.RevokedExpiry
	}
	return nil
}

type fakeResetRepo struct {
	byAccount map[string]*models.ResetCredential

	insertErr error
	findErr   error
	deleteErr error
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byAccount: map[string]*models.ResetCredential{}}
}

func (f *fakeResetRepo) Insert(ctx context.Context, c *models.ResetCredential) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	cp := *c
	f.byAccount[c.AccountID] = &cp
	return nil
}

func (f *fakeResetRepo) Find(ctx context.Context, accountID string) (*models.ResetCredential, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	c, ok := f.byAccount[accountID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeResetRepo) Delete(ctx context.Context, accountID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.byAccount, accountID)
	return nil
}

type fakeRepoManager struct {
	accounts *fakeAccountsRepo
	sessions *fakeSessionsRepo
	resets   *fakeResetRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		accounts: newFakeAccountsRepo(),
		sessions: newFakeSessionsRepo(),
		resets:   newFakeResetRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return m.sessions
}
func (m *fakeRepoManager) ResetCredentials(db dbx.DBTX) resetcredsrepo.Repository {
	return m.resets
}

type captureMailer struct {
	to      string
	subject string
	body    string
	sent    int
	err     error
}

func (m *captureMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.subject, m.body = to, subject, htmlBody
	m.sent++
	return nil
}

// --- shared constructors ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		AuthTokenSecret:     "auth-secret",
		UserDataTokenSecret: "user-data-secret",
		AuthTokenTTL:        time.Hour,
		ResetTokenTTL:       30 * time.Minute,
		ClientBaseURL:       "https://app.example.com",
	}
}

var errStore = errors.New("store unreachable")
