package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
)

type UserDeleter interface {
	DeleteUser(ctx context.Context, username string) error
}

func DeleteUser(log *slog.Logger, users UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.DeleteUser"

		username := chi.URLParam(r, "username")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := users.DeleteUser(ctx, username); err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("user deleted", slog.String("op", op), slog.String("username", username))

		w.WriteHeader(http.StatusNoContent)
	}
}
