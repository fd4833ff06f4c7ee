package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"famigliapp/internal/storage"
)

type ctxKey struct{}

type UserStore interface {
	GetUser(ctx context.Context, username string) (storage.User, error)
	Authenticate(ctx context.Context, username, password string) (storage.User, error)
}

// Admin: учётная запись из конфига для входа по Basic без записи в users.
type Admin struct {
	Login    string
	Password string
}

func (a Admin) user() storage.User {
	return storage.User{Username: a.Login, Name: "Administrator", Role: storage.RoleAdmin}
}

// Authenticate определяет текущего пользователя по Bearer-токену или Basic-учётке
// и кладёт его в контекст запроса.
func Authenticate(log *slog.Logger, tokens *Tokens, users UserStore, admin Admin) func(http.Handler) http.Handler {
	const op = "middleware.auth.Authenticate"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				usr storage.User
				err error
			)

			header := r.Header.Get("Authorization")
			switch {
			case strings.HasPrefix(header, "Bearer "):
				usr, err = bearerUser(r, tokens, users, strings.TrimPrefix(header, "Bearer "))
			case strings.HasPrefix(header, "Basic "):
				usr, err = basicUser(r, users, admin)
			default:
				requireAuth(w)
				return
			}

			if err != nil {
				if errors.Is(err, ErrInvalidToken) || errors.Is(err, storage.ErrBadCredentials) || errors.Is(err, storage.ErrNotFound) {
					log.Debug("authentication failed", slog.String("op", op), slog.String("error", err.Error()))
					requireAuth(w)
					return
				}
				log.Error("failed to authenticate", slog.String("op", op), slog.String("error", err.Error()))
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), usr)))
		})
	}
}

func bearerUser(r *http.Request, tokens *Tokens, users UserStore, token string) (storage.User, error) {
	claims, err := tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return storage.User{}, err
	}
	// пользователь мог быть удалён после выдачи токена
	return users.GetUser(r.Context(), claims.Subject)
}

func basicUser(r *http.Request, users UserStore, admin Admin) (storage.User, error) {
	login, pass, ok := r.BasicAuth()
	if !ok {
		return storage.User{}, storage.ErrBadCredentials
	}
	if admin.Login != "" && credentialsMatch(login, pass, admin.Login, admin.Password) {
		return admin.user(), nil
	}
	return users.Authenticate(r.Context(), login, pass)
}

// RequireAdmin ставится после Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usr, ok := UserFrom(r.Context())
		if !ok {
			requireAuth(w)
			return
		}
		if !usr.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUser(ctx context.Context, usr storage.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, usr)
}

func UserFrom(ctx context.Context) (storage.User, bool) {
	usr, ok := ctx.Value(ctxKey{}).(storage.User)
	return usr, ok
}
