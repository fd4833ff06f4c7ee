package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type UserCreator interface {
	CreateUser(ctx context.Context, nu storage.NewUser) (storage.User, error)
}

// CreateUser: регистрация пользователя администратором; занятый логин → 409.
func CreateUser(log *slog.Logger, users UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.CreateUser"

		var req storage.NewUser
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		usr, err := users.CreateUser(ctx, req)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("user created", slog.String("op", op), slog.String("username", usr.Username))

		response.Created(w, r, usr.Public())
	}
}
