package get

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"famigliapp/internal/logger"
	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/storage"
)

type MockResocontoProvider struct {
	mock.Mock
}

func (m *MockResocontoProvider) ListResoconti(ctx context.Context, filter storage.ResocontoFilter) ([]storage.Resoconto, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]storage.Resoconto), args.Error(1)
}

func get(provider ResocontoProvider, usr storage.User, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithUser(req.Context(), usr))
	rr := httptest.NewRecorder()
	ListResoconti(logger.Discard(), provider).ServeHTTP(rr, req)
	return rr
}

// Тест: участник не может смотреть чужие отчёты, фильтр автора подменяется
func TestListResoconti_MemberSeesOwn(t *testing.T) {
	provider := new(MockResocontoProvider)
	provider.On("ListResoconti", mock.Anything, storage.ResocontoFilter{Author: "giulia", From: "2026-03-01"}).
		Return([]storage.Resoconto{}, nil)

	rr := get(provider, storage.User{Username: "giulia", Role: storage.RoleMember}, "/api/resoconto?author=marco&from=2026-03-01")

	assert.Equal(t, http.StatusOK, rr.Code)
	provider.AssertExpectations(t)
}

// Тест: админ фильтрует по любому автору
func TestListResoconti_Admin(t *testing.T) {
	provider := new(MockResocontoProvider)
	provider.On("ListResoconti", mock.Anything, storage.ResocontoFilter{Author: "marco"}).
		Return([]storage.Resoconto{{ID: "r1", Author: "marco"}}, nil)

	rr := get(provider, storage.User{Username: "mamma", Role: storage.RoleAdmin}, "/api/resoconto?author=marco")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"r1"`)
}

func TestListResoconti_BadDate(t *testing.T) {
	provider := new(MockResocontoProvider)

	rr := get(provider, storage.User{Username: "giulia"}, "/api/resoconto?to=marzo")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
