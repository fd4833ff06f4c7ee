package delete

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"famigliapp/internal/logger"
	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/storage"
)

type MockBravissimoDeleter struct {
	mock.Mock
}

func (m *MockBravissimoDeleter) DeleteBravissimo(ctx context.Context, id string, actor storage.User) error {
	return m.Called(ctx, id, actor).Error(0)
}

func serve(deleter BravissimoDeleter, usr storage.User, id string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/api/bravissimo/{id}", DeleteBravissimo(logger.Discard(), deleter))

	req := httptest.NewRequest(http.MethodDelete, "/api/bravissimo/"+id, nil)
	req = req.WithContext(auth.WithUser(req.Context(), usr))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestDeleteBravissimo(t *testing.T) {
	marco := storage.User{Username: "marco"}
	deleter := new(MockBravissimoDeleter)
	deleter.On("DeleteBravissimo", mock.Anything, "b1", marco).Return(nil)

	rr := serve(deleter, marco, "b1")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	deleter.AssertExpectations(t)
}

// Тест: чужая запись → 403
func TestDeleteBravissimo_Forbidden(t *testing.T) {
	giulia := storage.User{Username: "giulia"}
	deleter := new(MockBravissimoDeleter)
	deleter.On("DeleteBravissimo", mock.Anything, "b1", giulia).Return(storage.ErrForbidden)

	rr := serve(deleter, giulia, "b1")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
