package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
)

type CorsoDeleter interface {
	DeleteCorso(ctx context.Context, id string) error
}

func DeleteCorso(log *slog.Logger, deleter CorsoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.corso.DeleteCorso"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteCorso(ctx, chi.URLParam(r, "id")); err != nil {
			response.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
