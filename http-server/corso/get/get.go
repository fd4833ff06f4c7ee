package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type CorsoProvider interface {
	ListCorsi(ctx context.Context) ([]storage.Corso, error)
}

func ListCorsi(log *slog.Logger, provider CorsoProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.corso.ListCorsi"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListCorsi(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}
