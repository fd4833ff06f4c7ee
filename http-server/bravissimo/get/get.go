package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type BravissimoProvider interface {
	ListBravissimo(ctx context.Context, target string) ([]storage.Bravissimo, error)
}

// ListBravissimo: похвалы, новые сверху; ?target= оставляет адресованные одному пользователю.
func ListBravissimo(log *slog.Logger, provider BravissimoProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bravissimo.ListBravissimo"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListBravissimo(ctx, r.URL.Query().Get("target"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}
