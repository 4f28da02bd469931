package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webident/authcore/internal/common"
	"github.com/webident/authcore/internal/dbx"
	"github.com/webident/authcore/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO session_ledger (id, account_id, token, login_at, login_ip, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.AccountID, session.Token,
		session.LoginAt, session.LoginIP, session.Expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, tokenString string) (*models.Session, error) {
	query := `
		SELECT id, account_id, token, login_at, login_ip, expires_at
		FROM session_ledger
		WHERE token = $1
	`
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, tokenString).Scan(
		&session.ID, &session.AccountID, &session.Token,
		&session.LoginAt, &session.LoginIP, &session.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

func (r *PostgresRepository) Revoke(ctx context.Context, tokenString string) error {
	query := `
		UPDATE session_ledger SET expires_at = $1
		WHERE token = $2
	`
	if _, err := r.db.ExecContext(ctx, query, RevokedExpiry, tokenString); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
