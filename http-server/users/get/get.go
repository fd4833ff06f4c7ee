package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type UsersProvider interface {
	ListUsers(ctx context.Context) ([]storage.User, error)
}

// Me: текущий пользователь.
func Me(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}
		response.JSON(w, r, usr.Public())
	}
}

func ListUsers(log *slog.Logger, users UsersProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.ListUsers"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := users.ListUsers(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		out := make([]storage.User, 0, len(list))
		for _, u := range list {
			out = append(out, u.Public())
		}

		response.JSON(w, r, out)
	}
}
