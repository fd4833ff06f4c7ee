package delete

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"famigliapp/internal/logger"
	"famigliapp/internal/storage"
)

type MockUserDeleter struct {
	mock.Mock
}

func (m *MockUserDeleter) DeleteUser(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func serve(users UserDeleter, username string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/api/admin/users/{username}", DeleteUser(logger.Discard(), users))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+username, nil))
	return rr
}

func TestDeleteUser(t *testing.T) {
	users := new(MockUserDeleter)
	users.On("DeleteUser", mock.Anything, "marco").Return(nil)

	rr := serve(users, "marco")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	users.AssertExpectations(t)
}

func TestDeleteUser_NotFound(t *testing.T) {
	users := new(MockUserDeleter)
	users.On("DeleteUser", mock.Anything, "zio").Return(fmt.Errorf("repo: %w", storage.ErrNotFound))

	rr := serve(users, "zio")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
