package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/dbx"
	"github.com/webident/authcore/internal/logging"
	"github.com/webident/authcore/internal/server/config"
	"github.com/webident/authcore/internal/server/models"
	accountsrepo "github.com/webident/authcore/internal/server/repositories/accounts"
	resetcredsrepo "github.com/webident/authcore/internal/server/repositories/resetcreds"
	sessionsrepo "github.com/webident/authcore/internal/server/repositories/sessions"
	"github.com/webident/authcore/internal/server/services"
)

// In-memory repositories backing full-stack handler tests: real services,
// real router, fake storage.

type memAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{
		byEmail: map[string]*models.Account{},
		byID:    map[string]*models.Account{},
	}
}

func (m *memAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	cp := *a
	m.byEmail[a.Email] = &cp
	m.byID[a.ID] = &cp
	return a, nil
}

func (m *memAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAccountsRepo) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	if a, ok := m.byID[id]; ok {
		a.PasswordHash = hash
		a.Salt = salt
	}
	return nil
}

type memSessionsRepo struct {
	byToken map[string]*models.Session

	findErr error
}

func newMemSessionsRepo() *memSessionsRepo {
	return &memSessionsRepo{byToken: map[string]*models.Session{}}
}

func (m *memSessionsRepo) RecordLogin(ctx context.Context, s *models.Session) error {
	cp := *s
	m.byToken[s.Token] = &cp
	return nil
}

func (m *memSessionsRepo) Find(ctx context.Context, tok string) (*models.Session, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	s, ok := m.byToken[tok]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionsRepo) Revoke(ctx context.Context, tok string) error {
	if s, ok := m.byToken[tok]; ok {
		s.Expires = sessionsrepo.RevokedExpiry
	}
	return nil
}

type memResetRepo struct {
	byAccount map[string]*models.ResetCredential
}

func newMemResetRepo() *memResetRepo {
	return &memResetRepo{byAccount: map[string]*models.ResetCredential{}}
}

func (m *memResetRepo) Insert(ctx context.Context, c *models.ResetCredential) error {
	cp := *c
	m.byAccount[c.AccountID] = &cp
	return nil
}

func (m *memResetRepo) Find(ctx context.Context, accountID string) (*models.ResetCredential, error) {
	c, ok := m.byAccount[accountID]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memResetRepo) Delete(ctx context.Context, accountID string) error {
	delete(m.byAccount, accountID)
	return nil
}

type memRepoManager struct {
	accounts *memAccountsRepo
	sessions *memSessionsRepo
	resets   *memResetRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		accounts: newMemAccountsRepo(),
		sessions: newMemSessionsRepo(),
		resets:   newMemResetRepo(),
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository {
	return m.accounts
}
func (m *memRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository {
	return m.sessions
}
func (m *memRepoManager) ResetCredentials(db dbx.DBTX) resetcredsrepo.Repository {
	return m.resets
}

type recordingMailer struct {
	bodies []string
	to     []string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, htmlBody)
	return nil
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

// envelope mirrors the response wrapper for decoding in assertions.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode response envelope: %v", err)
	}
	return env
}

func dataString(t *testing.T, env envelope) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(env.Data, &s); err != nil {
		t.Fatalf("data is not a string: %s", env.Data)
	}
	return s
}

const testOrigin = "192.0.2.1:1234"

type testEnv struct {
	router http.Handler
	repos  *memRepoManager
	mailer *recordingMailer
	mock   sqlmock.Sqlmock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repos := newMemRepoManager()
	mailer := &recordingMailer{}
	cfg := testConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	auth := services.NewAuthService(db, repos, cfg)
	reset := services.NewResetService(db, repos, mailer, cfg, logger)
	h := NewHandler(auth, reset, logger)

	return &testEnv{
		router: NewRouter(h),
		repos:  repos,
		mailer: mailer,
		mock:   mock,
	}
}

// do sends a JSON request through the full router, optionally attaching
// cookies, and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return e.doFrom(t, testOrigin, method, path, body, cookies...)
}

// doFrom is do with an explicit client address.
func (e *testEnv) doFrom(t *testing.T, remoteAddr, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = remoteAddr
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// signupAndLogin registers an account and logs in, returning the cookies the
// login response set.
func (e *testEnv) signupAndLogin(t *testing.T, email, pw string) []*http.Cookie {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/session/signup", map[string]string{
		"email":     email,
		"password":  pw,
		"firstName": "Alice",
		"lastName":  "Smith",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("signup status = %d, body %s", rr.Code, rr.Body.String())
	}

	rr = e.do(t, http.MethodPost, "/session/login", map[string]string{
		"email":    email,
		"password": pw,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login set no cookies")
	}
	return cookies
}

func authCookie(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == common.AuthCookieName {
			return c
		}
	}
	t.Fatalf("auth cookie not present")
	return nil
}
