package get

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/logger"
	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/storage"
)

type MockUsersProvider struct {
	mock.Mock
}

func (m *MockUsersProvider) ListUsers(ctx context.Context) ([]storage.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.User), args.Error(1)
}

// Тест: /api/me отдаёт пользователя из контекста
func TestMe(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(auth.WithUser(req.Context(), storage.User{Username: "giulia", PasswordHash: "h"}))
	rr := httptest.NewRecorder()

	Me(logger.Discard()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var usr storage.User
	require.NoError(t, render.DecodeJSON(rr.Body, &usr))
	assert.Equal(t, "giulia", usr.Username)
	assert.Empty(t, usr.PasswordHash)
}

// Тест: список пользователей без хэшей паролей
func TestListUsers(t *testing.T) {
	users := new(MockUsersProvider)
	users.On("ListUsers", mock.Anything).Return([]storage.User{
		{Username: "giulia", PasswordHash: "h1"},
		{Username: "marco", PasswordHash: "h2"},
	}, nil)

	rr := httptest.NewRecorder()
	ListUsers(logger.Discard(), users).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "password_hash")
	assert.Contains(t, rr.Body.String(), "marco")
}

func TestListUsers_Error(t *testing.T) {
	users := new(MockUsersProvider)
	users.On("ListUsers", mock.Anything).Return(nil, errors.New("disk"))

	rr := httptest.NewRecorder()
	ListUsers(logger.Discard(), users).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
