package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
)

type KouzaDeleter interface {
	DeleteKouza(ctx context.Context, id string) error
}

// DeleteKouza удаляет семинар вместе с отзывами.
func DeleteKouza(log *slog.Logger, deleter KouzaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.DeleteKouza"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteKouza(ctx, id); err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("kouza deleted", slog.String("op", op), slog.String("id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
