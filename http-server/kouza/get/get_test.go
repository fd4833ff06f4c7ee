package get

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/logger"
	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/storage"
)

type MockKouzaProvider struct {
	mock.Mock
}

func (m *MockKouzaProvider) Today() storage.Date {
	return m.Called().Get(0).(storage.Date)
}

func (m *MockKouzaProvider) ListKouza(ctx context.Context) ([]storage.Kouza, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Kouza), args.Error(1)
}

func (m *MockKouzaProvider) PendingKouza(ctx context.Context, username string, today storage.Date) ([]storage.Kouza, error) {
	args := m.Called(ctx, username, today)
	return args.Get(0).([]storage.Kouza), args.Error(1)
}

func (m *MockKouzaProvider) ListKouzaFeedback(ctx context.Context, kouzaID, author string) ([]storage.KouzaFeedback, error) {
	args := m.Called(ctx, kouzaID, author)
	return args.Get(0).([]storage.KouzaFeedback), args.Error(1)
}

func serve(h http.HandlerFunc, pattern, target string, usr storage.User) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get(pattern, h)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(auth.WithUser(req.Context(), usr))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// Тест: список с крайним сроком и признаком открытого окна
func TestListKouza(t *testing.T) {
	provider := new(MockKouzaProvider)
	provider.On("Today").Return(storage.Date("2026-03-10"))
	provider.On("ListKouza", mock.Anything).Return([]storage.Kouza{
		{ID: "k1", HeldOn: "2026-03-05", DeadlineDays: 7},
		{ID: "k2", HeldOn: "2026-02-01", DeadlineDays: 7},
	}, nil)

	rr := serve(ListKouza(logger.Discard(), provider), "/api/kouza", "/api/kouza", storage.User{Username: "giulia"})

	require.Equal(t, http.StatusOK, rr.Code)
	var items []Item
	require.NoError(t, render.DecodeJSON(rr.Body, &items))
	require.Len(t, items, 2)
	assert.Equal(t, storage.Date("2026-03-12"), items[0].Deadline)
	assert.True(t, items[0].Open)
	assert.False(t, items[1].Open)
}

func TestPending(t *testing.T) {
	provider := new(MockKouzaProvider)
	provider.On("Today").Return(storage.Date("2026-03-10"))
	provider.On("PendingKouza", mock.Anything, "giulia", storage.Date("2026-03-10")).
		Return([]storage.Kouza{{ID: "k1"}}, nil)

	rr := serve(Pending(logger.Discard(), provider), "/api/kouza/pending", "/api/kouza/pending", storage.User{Username: "giulia"})

	assert.Equal(t, http.StatusOK, rr.Code)
	provider.AssertExpectations(t)
}

// Тест: участник получает только свой отзыв, админ: все
func TestListFeedback_Scope(t *testing.T) {
	provider := new(MockKouzaProvider)
	provider.On("ListKouzaFeedback", mock.Anything, "k1", "giulia").Return([]storage.KouzaFeedback{}, nil)
	provider.On("ListKouzaFeedback", mock.Anything, "k1", "").Return([]storage.KouzaFeedback{}, nil)

	h := ListFeedback(logger.Discard(), provider)
	serve(h, "/api/kouza/{id}/feedback", "/api/kouza/k1/feedback", storage.User{Username: "giulia", Role: storage.RoleMember})
	serve(h, "/api/kouza/{id}/feedback", "/api/kouza/k1/feedback", storage.User{Username: "mamma", Role: storage.RoleAdmin})

	provider.AssertExpectations(t)
}

func TestListFeedback_NotFound(t *testing.T) {
	provider := new(MockKouzaProvider)
	provider.On("ListKouzaFeedback", mock.Anything, "nope", "giulia").
		Return([]storage.KouzaFeedback(nil), fmt.Errorf("kouza: %w", storage.ErrNotFound))

	rr := serve(ListFeedback(logger.Discard(), provider), "/api/kouza/{id}/feedback", "/api/kouza/nope/feedback", storage.User{Username: "giulia"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
