package resetcreds

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

func (r *PostgresRepository) Insert(ctx context.Context, cred *models.ResetCredential) error {
	query := `
		INSERT INTO reset_credentials (account_id, secret_hash, salt, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		cred.AccountID, cred.SecretHash, cred.Salt, cred.Expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, accountID string) (*models.ResetCredential, error) {
	query := `
		SELECT account_id, secret_hash, salt, expires_at
		FROM reset_credentials
		WHERE account_id = $1
	`
	cred := &models.ResetCredential{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&cred.AccountID, &cred.SecretHash, &cred.Salt, &cred.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cred, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, accountID string) error {
	query := `
		DELETE FROM reset_credentials
		WHERE account_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
