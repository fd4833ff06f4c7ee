package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type ResocontoProvider interface {
	ListResoconti(ctx context.Context, filter storage.ResocontoFilter) ([]storage.Resoconto, error)
}

// ListResoconti: ?author=&from=&to=. Участник видит только свои отчёты.
func ListResoconti(log *slog.Logger, provider ResocontoProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resoconto.ListResoconti"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		filter := storage.ResocontoFilter{
			Author: q.Get("author"),
			From:   storage.Date(q.Get("from")),
			To:     storage.Date(q.Get("to")),
		}
		if (filter.From != "" && !filter.From.Valid()) || (filter.To != "" && !filter.To.Valid()) {
			http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		if !usr.IsAdmin() {
			filter.Author = usr.Username
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListResoconti(ctx, filter)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}
