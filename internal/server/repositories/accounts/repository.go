// Package accounts declares the repository contract for identity records.
package accounts

import (
	"context"

	"github.com/webident/authcore/internal/server/models"
)

// Repository defines persistence operations for accounts. Lookups that find
// nothing return common.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// UpdatePassword replaces the stored hash and salt. Only the password
	// reset flow mutates credential material.
	UpdatePassword(ctx context.Context, id, passwordHash, salt string) error
}
