package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type CorsoUpdater interface {
	UpdateCorso(ctx context.Context, id string, form storage.CorsoForm) (storage.Corso, error)
}

func UpdateCorso(log *slog.Logger, updater CorsoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.corso.UpdateCorso"

		var form storage.CorsoForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := updater.UpdateCorso(ctx, chi.URLParam(r, "id"), form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, c)
	}
}
