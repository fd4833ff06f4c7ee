package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type EventDeleter interface {
	DeleteEvent(ctx context.Context, id string, actor storage.User) error
}

func DeleteEvent(log *slog.Logger, deleter EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.DeleteEvent"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteEvent(ctx, chi.URLParam(r, "id"), usr); err != nil {
			response.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
