package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type PointsProvider interface {
	Ranking(ctx context.Context) ([]storage.RankedPoints, error)
	PointsHistory(ctx context.Context, username string) ([]storage.PointsHistory, error)
}

// Ranking: рейтинг по сумме A+O+U, равные суммы делят место.
func Ranking(log *slog.Logger, provider PointsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.points.Ranking"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ranking, err := provider.Ranking(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, ranking)
	}
}

func History(log *slog.Logger, provider PointsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.points.History"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		history, err := provider.PointsHistory(ctx, chi.URLParam(r, "username"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, history)
	}
}
