package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/planit/api/internal/model"
	"github.com/planit/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factor (10-14 recommended for production)
const bcryptCost = 12

// UserRepositoryInterface defines the interface for user storage
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateInterests(ctx context.Context, userID string, interests []string) error
	CreateFeedback(ctx context.Context, feedback *model.Feedback) error
}

// AuthService handles registration and login
type AuthService struct {
	userRepo   UserRepositoryInterface
	jwtService *jwt.Service
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo   UserRepositoryInterface
	JWTService *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo:   cfg.UserRepo,
		jwtService: cfg.JWTService,
	}
}

// AuthResult is a successful registration or login
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a new account. All field validations run before any
// uniqueness check; failures are reported together.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*AuthResult, error) {
	input, errs := req.Validate()
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	email := strings.ToLower(input.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	existing, err = s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:    email,
		Username: input.Username,
		Name:     input.Name,
		Hash:     string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Hash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ValidateAccessToken validates a bearer token (used by the auth middleware)
func (s *AuthService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return s.jwtService.Validate(token)
}

func (s *AuthService) signToken(user *model.User) (string, error) {
	token, err := s.jwtService.Sign(jwt.Claims{
		Subject:  user.ID,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}
