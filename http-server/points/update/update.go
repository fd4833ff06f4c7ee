package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
	"famigliapp/internal/validate"
)

type PointsUpdater interface {
	ApplyPoints(ctx context.Context, username string, delta storage.PointsDelta, by string) (storage.Points, error)
}

// ApplyPoints прибавляет дельты A/O/U пользователю и пишет историю.
func ApplyPoints(log *slog.Logger, updater PointsUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.points.ApplyPoints"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var delta storage.PointsDelta
		if !response.Decode(w, r, &delta) {
			return
		}
		if delta.DeltaA == 0 && delta.DeltaO == 0 && delta.DeltaU == 0 {
			response.Invalid(w, validate.Errors{{Field: "delta_a", Error: "at least one delta must be non-zero"}})
			return
		}

		username := chi.URLParam(r, "username")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		points, err := updater.ApplyPoints(ctx, username, delta, usr.Username)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("points applied",
			slog.String("op", op),
			slog.String("username", username),
			slog.Int("a", delta.DeltaA),
			slog.Int("o", delta.DeltaO),
			slog.Int("u", delta.DeltaU),
			slog.String("by", usr.Username),
		)

		response.JSON(w, r, points)
	}
}
