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

type KouzaCreator interface {
	AddKouza(ctx context.Context, author string, form storage.KouzaForm) (storage.Kouza, error)
}

type FeedbackSubmitter interface {
	SubmitKouzaFeedback(ctx context.Context, kouzaID, author string, form storage.KouzaFeedbackForm) (storage.KouzaFeedback, error)
}

func AddKouza(log *slog.Logger, creator KouzaCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.AddKouza"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.KouzaForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		k, err := creator.AddKouza(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, k)
	}
}

// SubmitFeedback принимает отзыв внутри окна [held_on, deadline]; повторная отправка заменяет прежний.
func SubmitFeedback(log *slog.Logger, submitter FeedbackSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.kouza.SubmitFeedback"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.KouzaFeedbackForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		fb, err := submitter.SubmitKouzaFeedback(ctx, chi.URLParam(r, "id"), usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, fb)
	}
}
