package auth

import (
	"crypto/subtle"
	"net/http"
)

// BasicAuth пропускает запрос только с заданными логином и паролем.
// Используется для статики админки; API проверяет доступ через Authenticate.
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			login, pass, ok := r.BasicAuth()
			if !ok || username == "" || !credentialsMatch(login, pass, username, password) {
				requireAuth(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func credentialsMatch(login, pass, wantLogin, wantPass string) bool {
	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(wantLogin)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	return loginOK && passOK
}

func requireAuth(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Famigliapp"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
