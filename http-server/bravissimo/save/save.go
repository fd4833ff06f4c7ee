package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type BravissimoCreator interface {
	AddBravissimo(ctx context.Context, author string, form storage.NewBravissimo) (storage.Bravissimo, error)
}

func AddBravissimo(log *slog.Logger, creator BravissimoCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.bravissimo.AddBravissimo"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.NewBravissimo
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		b, err := creator.AddBravissimo(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, b)
	}
}
