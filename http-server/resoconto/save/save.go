package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type ResocontoCreator interface {
	AddResoconto(ctx context.Context, author string, form storage.ResocontoForm) (storage.Resoconto, error)
	AddResocontoFeedback(ctx context.Context, id, author, body string) (storage.Resoconto, error)
}

type FeedbackRequest struct {
	Body string `json:"body" validate:"required,notblank,max=5000"`
}

// AddResoconto: один отчёт на автора за дату, повтор → 409.
func AddResoconto(log *slog.Logger, creator ResocontoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resoconto.AddResoconto"

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

		rep, err := creator.AddResoconto(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, rep)
	}
}

func AddFeedback(log *slog.Logger, creator ResocontoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resoconto.AddFeedback"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var req FeedbackRequest
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep, err := creator.AddResocontoFeedback(ctx, chi.URLParam(r, "id"), usr.Username, req.Body)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, rep)
	}
}
