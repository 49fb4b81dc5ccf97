package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithPosts(ctx context.Context, id uint, limit int) (*models.User, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret-test-secret-test-1234", Port: "8380"}
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: repo}
	app := fiber.New()
	app.Post("/register", s.Register)

	repo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	repo.On("GetByUsername", mock.Anything, "newuser").Return(nil, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = 1
	}).Return(nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "newuser",
		"email":    "new@example.com",
		"password": "SecurePass12!@",
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "newuser", data.User.Username)
	repo.AssertExpectations(t)
}

func TestRegisterValidation(t *testing.T) {
	s := &Server{config: testConfig(), userRepo: new(MockUserRepository)}
	app := fiber.New()
	app.Post("/register", s.Register)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing fields", map[string]string{"username": "x"}},
		{"bad username", map[string]string{"username": "a!", "email": "a@b.com", "password": "SecurePass12!@"}},
		{"bad email", map[string]string{"username": "gooduser", "email": "nope", "password": "SecurePass12!@"}},
		{"weak password", map[string]string{"username": "gooduser", "email": "a@b.com", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", tt.payload))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	repo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: repo}
	app := fiber.New()
	app.Post("/register", s.Register)

	repo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: 1}, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "newuser",
		"email":    "taken@example.com",
		"password": "SecurePass12!@",
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	repo.AssertNotCalled(t, "Create")
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!@"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: repo}
	app := fiber.New()
	app.Post("/login", s.Login)

	repo.On("GetByEmail", mock.Anything, "ada@example.com").Return(&models.User{
		ID: 1, Username: "ada", Email: "ada@example.com", Password: string(hash),
	}, nil)

	t.Run("correct password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"email":    "ada@example.com",
			"password": "SecurePass12!@",
		}))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var data struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&data))
		assert.NotEmpty(t, data.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
			"email":    "ada@example.com",
			"password": "WrongPass12!@",
		}))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: repo}
	app := fiber.New()
	app.Post("/login", s.Login)

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "SecurePass12!@",
	}))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := &Server{config: testConfig(), redis: redisClient}
	app := fiber.New()
	app.Post("/logout", s.AuthRequired(), s.Logout)
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token, err := s.generateToken(1, "ada")
	require.NoError(t, err)

	// Token works before logout.
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Logout blacklists the jti.
	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The same token is now rejected.
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	s := &Server{config: testConfig()}
	app := fiber.New()
	app.Get("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := s.generateToken(7, "ada")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
