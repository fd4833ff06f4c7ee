package get

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"famigliapp/internal/logger"
	"famigliapp/internal/storage"
)

type MockPointsProvider struct {
	mock.Mock
}

func (m *MockPointsProvider) Ranking(ctx context.Context) ([]storage.RankedPoints, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.RankedPoints), args.Error(1)
}

func (m *MockPointsProvider) PointsHistory(ctx context.Context, username string) ([]storage.PointsHistory, error) {
	args := m.Called(ctx, username)
	return args.Get(0).([]storage.PointsHistory), args.Error(1)
}

func serve(provider PointsProvider, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/points", Ranking(logger.Discard(), provider))
	router.Get("/api/points/{username}/history", History(logger.Discard(), provider))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestRanking(t *testing.T) {
	provider := new(MockPointsProvider)
	provider.On("Ranking", mock.Anything).Return([]storage.RankedPoints{
		{Rank: 1, Points: storage.Points{Username: "nonna", A: 7}, Total: 7},
		{Rank: 2, Points: storage.Points{Username: "giulia", O: 3}, Total: 3},
		{Rank: 2, Points: storage.Points{Username: "marco", U: 3}, Total: 3},
	}, nil)

	rr := serve(provider, "/api/points")

	require.Equal(t, http.StatusOK, rr.Code)
	var ranking []storage.RankedPoints
	require.NoError(t, render.DecodeJSON(rr.Body, &ranking))
	require.Len(t, ranking, 3)
	assert.Equal(t, "marco", ranking[2].Username)
	assert.Equal(t, 2, ranking[2].Rank)
	assert.Equal(t, 3, ranking[2].U)
}

func TestHistory(t *testing.T) {
	provider := new(MockPointsProvider)
	provider.On("PointsHistory", mock.Anything, "giulia").Return([]storage.PointsHistory{
		{ID: "h2", Username: "giulia", DeltaO: 10, Reason: "quest: Lavare la macchina"},
	}, nil)

	rr := serve(provider, "/api/points/giulia/history")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "quest: Lavare la macchina")
	provider.AssertExpectations(t)
}
