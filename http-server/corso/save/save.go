package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type CorsoCreator interface {
	AddCorso(ctx context.Context, author string, form storage.CorsoForm) (storage.Corso, error)
}

func AddCorso(log *slog.Logger, creator CorsoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.corso.AddCorso"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.CorsoForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		c, err := creator.AddCorso(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, c)
	}
}
