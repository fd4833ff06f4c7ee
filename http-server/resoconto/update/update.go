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

type ResocontoUpdater interface {
	UpdateResoconto(ctx context.Context, id string, form storage.ResocontoForm, actor storage.User) (storage.Resoconto, error)
}

// UpdateResoconto: править может только автор.
func UpdateResoconto(log *slog.Logger, updater ResocontoUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resoconto.UpdateResoconto"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.ResocontoForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep, err := updater.UpdateResoconto(ctx, chi.URLParam(r, "id"), form, usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, rep)
	}
}
