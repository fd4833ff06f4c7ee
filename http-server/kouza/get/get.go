package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type KouzaProvider interface {
	Today() storage.Date
	ListKouza(ctx context.Context) ([]storage.Kouza, error)
	PendingKouza(ctx context.Context, username string, today storage.Date) ([]storage.Kouza, error)
	ListKouzaFeedback(ctx context.Context, kouzaID, author string) ([]storage.KouzaFeedback, error)
}

// Item: семинар с крайним сроком и признаком открытого окна.
type Item struct {
	storage.Kouza
	Deadline storage.Date `json:"deadline"`
	Open     bool         `json:"open"`
}

func ListKouza(log *slog.Logger, provider KouzaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.ListKouza"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListKouza(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		today := provider.Today()
		items := make([]Item, 0, len(list))
		for _, k := range list {
			items = append(items, Item{Kouza: k, Deadline: k.Deadline(), Open: k.Open(today)})
		}

		response.JSON(w, r, items)
	}
}

// Pending: открытые семинары без отзыва текущего пользователя.
func Pending(log *slog.Logger, provider KouzaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.Pending"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.PendingKouza(ctx, usr.Username, provider.Today())
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}

// ListFeedback: админ видит все отзывы, участник только свой.
func ListFeedback(log *slog.Logger, provider KouzaProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.ListFeedback"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		author := usr.Username
		if usr.IsAdmin() {
			author = ""
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListKouzaFeedback(ctx, chi.URLParam(r, "id"), author)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}
