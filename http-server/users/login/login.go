package login

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (storage.User, error)
}

type TokenIssuer interface {
	Generate(usr storage.User) (string, time.Time, error)
}

type Request struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Response struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      storage.User `json:"user"`
}

func Login(log *slog.Logger, users Authenticator, tokens TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.users.Login"

		var req Request
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		usr, err := users.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			log.Info("login failed", slog.String("op", op), slog.String("username", req.Username))
			response.Error(w, log, op, err)
			return
		}

		token, expiresAt, err := tokens.Generate(usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("user logged in", slog.String("op", op), slog.String("username", usr.Username))

		response.JSON(w, r, Response{Token: token, ExpiresAt: expiresAt, User: usr.Public()})
	}
}
