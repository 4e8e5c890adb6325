package userRepo

import (
	"context"

	"gobarber/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// Update modifies an existing user record.
	Update(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetProvider retrieves a user by ID only if it is flagged as a provider.
	GetProvider(ctx context.Context, id string) (*models.User, error)
	// ListProviders retrieves all provider users.
	ListProviders(ctx context.Context) ([]models.User, error)
}
