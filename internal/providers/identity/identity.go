// Package identity talks to the auth service that owns credentials.
// Profiles live in our database; identities do not.
package identity

import (
	"context"

	"github.com/ecolemusique/backoffice/internal/models"
)

type Provider interface {
	// CreateUser registers a confirmed identity with the given password.
	CreateUser(ctx context.Context, email, password string) (*models.Identity, error)
	UpdatePassword(ctx context.Context, id, password string) error
	// DeleteUser returns utils.ErrNotFound when no identity has that id.
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]models.Identity, error)
}
