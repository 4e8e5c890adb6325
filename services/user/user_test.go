package user

import (
	"context"
	"testing"

	"gobarber/config"
	fileRepo "gobarber/database/repository/file"
	userRepo "gobarber/database/repository/user"
	"gobarber/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryUserRepo struct {
	users map[string]*models.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*models.User)}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *models.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return userRepo.ErrEmailTaken
		}
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return userRepo.ErrNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *memoryUserRepo) GetProvider(ctx context.Context, id string) (*models.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil || !u.Provider {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (r *memoryUserRepo) ListProviders(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Provider {
			out = append(out, *u)
		}
	}
	return out, nil
}

type memoryFileRepo struct {
	files map[string]*models.File
}

func (r *memoryFileRepo) Create(ctx context.Context, f *models.File) error {
	r.files[f.ID] = f
	return nil
}

func (r *memoryFileRepo) GetByID(ctx context.Context, id string) (*models.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, fileRepo.ErrNotFound
	}
	return f, nil
}

func newTestService() *DefaultUserService {
	return &DefaultUserService{
		Repo:  newMemoryUserRepo(),
		Files: &memoryFileRepo{files: make(map[string]*models.File)},
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService()

	usr, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ursula",
		Email:    "ursula@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, usr.ID)
	assert.NotEqual(t, "123456", usr.PasswordHash)
	assert.NotEmpty(t, usr.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Impostor", Email: "ursula@example.com", Password: "abcdef",
	})
	assert.ErrorIs(t, err, userRepo.ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	config.AppConfig.TokenTTLHours = 1

	svc := newTestService()
	usr, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	resp, err := svc.Authenticate(context.Background(), "ursula@example.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, resp.ID)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Authenticate(context.Background(), "ursula@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePasswordRequiresOldPassword(t *testing.T) {
	svc := newTestService()
	usr, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), usr.ID, UpdateInput{
		Password: "newpass", OldPassword: "wrong",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	_, err = svc.Update(context.Background(), usr.ID, UpdateInput{
		Password: "newpass", OldPassword: "123456",
	})
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "test-secret"
	_, err = svc.Authenticate(context.Background(), "ursula@example.com", "newpass")
	assert.NoError(t, err)
}

func TestUpdateRejectsUnknownAvatar(t *testing.T) {
	svc := newTestService()
	usr, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), usr.ID, UpdateInput{AvatarID: "missing"})
	assert.Error(t, err)
}

func TestListProvidersResolvesAvatarURL(t *testing.T) {
	svc := newTestService()

	provider, err := svc.Register(context.Background(), RegisterInput{
		Name: "Cecilia", Email: "cecilia@gobarber.com", Password: "123456", Provider: true,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	avatar := &models.File{ID: "avatar-1", Name: "me.png", URL: "https://cdn.example.com/me.png"}
	require.NoError(t, svc.Files.Create(context.Background(), avatar))
	_, err = svc.Update(context.Background(), provider.ID, UpdateInput{AvatarID: avatar.ID})
	require.NoError(t, err)

	views, err := svc.ListProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, provider.ID, views[0].ID)
	assert.Equal(t, "https://cdn.example.com/me.png", views[0].AvatarURL)
}

func TestSetFCMToken(t *testing.T) {
	svc := newTestService()
	usr, err := svc.Register(context.Background(), RegisterInput{
		Name: "Ursula", Email: "ursula@example.com", Password: "123456",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetFCMToken(context.Background(), usr.ID, "device-token"))

	stored, err := svc.GetByID(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "device-token", stored.FCMToken)
}
