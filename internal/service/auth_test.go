package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/planit/api/internal/model"
	"github.com/planit/api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFunc          func(ctx context.Context, user *model.User) error
	getByIDFunc         func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc      func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc   func(ctx context.Context, username string) (*model.User, error)
	updateInterestsFunc func(ctx context.Context, userID string, interests []string) error
	createFeedbackFunc  func(ctx context.Context, feedback *model.Feedback) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	if m.updateInterestsFunc != nil {
		return m.updateInterestsFunc(ctx, userID, interests)
	}
	return nil
}

func (m *mockUserRepo) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	if m.createFeedbackFunc != nil {
		return m.createFeedbackFunc(ctx, feedback)
	}
	return nil
}

func testJWTService(t *testing.T) *jwt.Service {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return jwt.NewTestService(key, "planit-test", 15*time.Minute)
}

func validRegister() *model.RegisterRequest {
	return &model.RegisterRequest{
		Email:    "ana@mail.com",
		Username: "ana_planner",
		Name:     "Ana",
		Password: "Sup3r!safe",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user *model.User) error {
			user.ID = "user:1"
			return nil
		},
	}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, JWTService: testJWTService(t)})

	result, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ana@mail.com", result.User.Email)
	assert.NotEqual(t, "Sup3r!safe", result.User.Hash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:1", Email: email}, nil
		},
	}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, JWTService: testJWTService(t)})

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByUsernameFunc: func(ctx context.Context, username string) (*model.User, error) {
			return &model.User{ID: "user:1", Username: username}, nil
		},
	}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, JWTService: testJWTService(t)})

	_, err := svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Register_ValidationBeforeUniqueness(t *testing.T) {
	t.Parallel()

	checked := false
	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			checked = true
			return nil, nil
		},
	}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, JWTService: testJWTService(t)})

	req := validRegister()
	req.Password = "abc"
	_, err := svc.Register(context.Background(), req)

	var apiErr *model.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.False(t, checked, "uniqueness check must not run before validation passes")
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r!safe"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			if email == "ana@mail.com" {
				return &model.User{ID: "user:1", Email: email, Hash: string(hash)}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(AuthServiceConfig{UserRepo: repo, JWTService: testJWTService(t)})

	result, err := svc.Login(context.Background(), &model.LoginRequest{Email: "Ana@mail.com", Password: "Sup3r!safe"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := svc.ValidateAccessToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "user:1", claims.UserID)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "ana@mail.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "ghost@mail.com", Password: "Sup3r!safe"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
