package user

import (
	"context"
	"errors"

	fileRepo "gobarber/database/repository/file"
	userRepo "gobarber/database/repository/user"
	"gobarber/models"
)

// ErrInvalidCredentials is returned on a failed email/password check.
var ErrInvalidCredentials = errors.New("email or password does not match")

// ErrPasswordMismatch is returned when oldPassword does not match on update.
var ErrPasswordMismatch = errors.New("password does not match")

// UserService defines user registration, authentication and profile
// management.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	Update(ctx context.Context, userID string, input UpdateInput) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListProviders(ctx context.Context) ([]ProviderView, error)
	SetFCMToken(ctx context.Context, userID, token string) error
}

// RegisterInput is the payload for user registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Provider bool
}

// UpdateInput is the payload for profile updates. A password change
// requires OldPassword to match.
type UpdateInput struct {
	Name        string
	Email       string
	OldPassword string
	Password    string
	AvatarID    string
}

// AuthResponse is the session payload issued on successful authentication.
type AuthResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider bool   `json:"provider"`
	Token    string `json:"token"`
}

// ProviderView is the public listing shape for a provider.
type ProviderView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo  userRepo.UserRepository
	Files fileRepo.FileRepository
}
