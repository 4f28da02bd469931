package repomanager

import (
	"context"
	"database/sql"

	"github.com/webident/authcore/internal/dbx"
	"github.com/webident/authcore/internal/server/repositories/accounts"
	"github.com/webident/authcore/internal/server/repositories/resetcreds"
	"github.com/webident/authcore/internal/server/repositories/sessions"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	ResetCredentials(db dbx.DBTX) resetcreds.Repository
}
