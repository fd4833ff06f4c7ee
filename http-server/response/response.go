package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/storage"
	"famigliapp/internal/validate"
)

type ValidationErrors struct {
	Errors validate.Errors `json:"errors"`
}

// statuses: доменные ошибки хранилища и их HTTP-статусы.
var statuses = []struct {
	err    error
	status int
}{
	{storage.ErrNotFound, http.StatusNotFound},
	{storage.ErrForbidden, http.StatusForbidden},
	{storage.ErrBadCredentials, http.StatusUnauthorized},
	{storage.ErrConflict, http.StatusConflict},
	{storage.ErrInvalidState, http.StatusConflict},
	{storage.ErrDeadlinePassed, http.StatusUnprocessableEntity},
	{storage.ErrNotYetHeld, http.StatusUnprocessableEntity},
	{storage.ErrInvalidInput, http.StatusUnprocessableEntity},
}

// Error отвечает статусом по доменной ошибке; всё остальное логируется и уходит как 500.
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		Invalid(w, verrs)
		return
	}

	for _, s := range statuses {
		if errors.Is(err, s.err) {
			http.Error(w, s.err.Error(), s.status)
			return
		}
	}

	log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Invalid отдаёт 422 со списком ошибок полей.
func Invalid(w http.ResponseWriter, verrs validate.Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(ValidationErrors{Errors: verrs})
}

// Decode читает JSON-тело в v и проверяет validate-теги.
// Возвращает false, если ответ об ошибке уже отправлен.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(v); err != nil {
		var verrs validate.Errors
		if errors.As(err, &verrs) {
			Invalid(w, verrs)
			return false
		}
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	return true
}

// CurrentUser: пользователь из контекста запроса; без него 401.
func CurrentUser(w http.ResponseWriter, r *http.Request) (storage.User, bool) {
	usr, ok := auth.UserFrom(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return storage.User{}, false
	}
	return usr, true
}

func JSON(w http.ResponseWriter, r *http.Request, v any) {
	render.JSON(w, r, v)
}

func Created(w http.ResponseWriter, r *http.Request, v any) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, v)
}
