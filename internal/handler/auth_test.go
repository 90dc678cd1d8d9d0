package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/planit/api/internal/middleware"
	"github.com/planit/api/internal/model"
	"github.com/planit/api/internal/service"
	"github.com/planit/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo is an in-memory UserRepositoryInterface for handler tests
type fakeUserRepo struct {
	createFunc        func(ctx context.Context, user *model.User) error
	getByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	updateInterests   func(ctx context.Context, userID string, interests []string) error
	createFeedback    func(ctx context.Context, feedback *model.Feedback) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, user)
	}
	user.ID = "user:new"
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.getByEmailFunc != nil {
		return f.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if f.getByUsernameFunc != nil {
		return f.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	if f.updateInterests != nil {
		return f.updateInterests(ctx, userID, interests)
	}
	return nil
}

func (f *fakeUserRepo) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	if f.createFeedback != nil {
		return f.createFeedback(ctx, feedback)
	}
	feedback.ID = "feedback:new"
	return nil
}

func newTestAuthHandler(t *testing.T, repo service.UserRepositoryInterface) *AuthHandler {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	jwtService := jwt.NewTestService(key, "planit-test", time.Hour)
	svc := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   repo,
		JWTService: jwtService,
	})
	return NewAuthHandler(svc)
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return payload.Error
}

func TestRegister_ValidInput_ReturnsCreated(t *testing.T) {
	handler := newTestAuthHandler(t, &fakeUserRepo{})

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", model.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Name:     "Alice",
		Password: "Sup3r!pass",
	})
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token in the response")
	}
	if result.User == nil || result.User.Email != "alice@example.com" {
		t.Errorf("unexpected user in response: %+v", result.User)
	}
}

func TestRegister_InvalidBody_ReturnsBadRequest(t *testing.T) {
	handler := newTestAuthHandler(t, &fakeUserRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRegister_ValidationFailures_CollectedInOneMessage(t *testing.T) {
	handler := newTestAuthHandler(t, &fakeUserRepo{})

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", model.RegisterRequest{
		Email:    "not-an-email",
		Username: "x",
		Name:     "",
		Password: "short",
	})
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	message := parseErrorResponse(t, rec.Body.Bytes())
	if !strings.Contains(message, ", ") {
		t.Errorf("expected multiple failures joined with comma, got %q", message)
	}
}

func TestRegister_EmailTaken_ReturnsBadRequest(t *testing.T) {
	repo := &fakeUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:1", Email: email}, nil
		},
	}
	handler := newTestAuthHandler(t, repo)

	req := makeJSONRequest(http.MethodPost, "/v1/auth/register", model.RegisterRequest{
		Email:    "taken@example.com",
		Username: "newuser",
		Name:     "New User",
		Password: "Sup3r!pass",
	})
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	message := parseErrorResponse(t, rec.Body.Bytes())
	if message != service.ErrEmailAlreadyExists.Error() {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestLogin_ValidCredentials_ReturnsToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r!pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &fakeUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:1", Email: email, Username: "alice", Hash: string(hash)}, nil
		},
	}
	handler := newTestAuthHandler(t, repo)

	req := makeJSONRequest(http.MethodPost, "/v1/auth/login", model.LoginRequest{
		Email:    "alice@example.com",
		Password: "Sup3r!pass",
	})
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.AuthResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token in the response")
	}
}

func TestLogin_WrongPassword_ReturnsBadRequest(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r!pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &fakeUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user:1", Email: email, Hash: string(hash)}, nil
		},
	}
	handler := newTestAuthHandler(t, repo)

	req := makeJSONRequest(http.MethodPost, "/v1/auth/login", model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	message := parseErrorResponse(t, rec.Body.Bytes())
	if message != service.ErrInvalidCredentials.Error() {
		t.Errorf("unexpected message: %q", message)
	}
}

func TestLogin_UnknownEmail_ReturnsBadRequest(t *testing.T) {
	handler := newTestAuthHandler(t, &fakeUserRepo{})

	req := makeJSONRequest(http.MethodPost, "/v1/auth/login", model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Sup3r!pass",
	})
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
