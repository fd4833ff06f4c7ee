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

type BravissimoDeleter interface {
	DeleteBravissimo(ctx context.Context, id string, actor storage.User) error
}

// DeleteBravissimo: удалить может автор или админ.
func DeleteBravissimo(log *slog.Logger, deleter BravissimoDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bravissimo.DeleteBravissimo"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteBravissimo(ctx, chi.URLParam(r, "id"), usr); err != nil {
			response.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
