// Package users persists user records. Both implementations rely on a
// unique index over email; a violation surfaces as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/server/models"
)

type Repository interface {
	// Create inserts user and returns it with CreatedAt filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns common.ErrorNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
