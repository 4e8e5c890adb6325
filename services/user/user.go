package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gobarber/config"
	fileRepo "gobarber/database/repository/file"
	"gobarber/models"
	"gobarber/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user account.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Provider:     input.Provider,
	}

	if err := s.Repo.Create(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// Authenticate verifies credentials and issues a session token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	ttl := time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
	token, err := utils.GenerateToken(usr.ID, usr.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	return &AuthResponse{
		ID:       usr.ID,
		Name:     usr.Name,
		Email:    usr.Email,
		Provider: usr.Provider,
		Token:    token,
	}, nil
}

// Update modifies the user's profile. Changing the password requires the
// current one.
func (s *DefaultUserService) Update(ctx context.Context, userID string, input UpdateInput) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		usr.Name = input.Name
	}
	if input.Email != "" {
		usr.Email = input.Email
	}
	if input.AvatarID != "" {
		if _, err := s.Files.GetByID(ctx, input.AvatarID); err != nil {
			return nil, fmt.Errorf("avatar file not found: %w", err)
		}
		usr.AvatarID = input.AvatarID
	}

	if input.Password != "" {
		if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(input.OldPassword)) != nil {
			return nil, ErrPasswordMismatch
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		usr.PasswordHash = string(hash)
	}

	if err := s.Repo.Update(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// GetByID retrieves a user by ID.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListProviders returns all providers with their avatar URLs resolved.
func (s *DefaultUserService) ListProviders(ctx context.Context) ([]ProviderView, error) {
	providers, err := s.Repo.ListProviders(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ProviderView, 0, len(providers))
	for _, p := range providers {
		view := ProviderView{ID: p.ID, Name: p.Name, Email: p.Email}
		if p.AvatarID != "" && s.Files != nil {
			if avatar, err := s.Files.GetByID(ctx, p.AvatarID); err == nil {
				view.AvatarURL = avatar.URL
			} else if !errors.Is(err, fileRepo.ErrNotFound) {
				return nil, err
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// SetFCMToken stores the user's device token for push delivery.
func (s *DefaultUserService) SetFCMToken(ctx context.Context, userID, token string) error {
	usr, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	usr.FCMToken = token
	return s.Repo.Update(ctx, usr)
}
