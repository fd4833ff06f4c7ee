package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type EventCreator interface {
	AddEvent(ctx context.Context, author string, form storage.EventForm) (storage.Event, error)
}

type ShiftValidator interface {
	Validate(ctx context.Context, from, to storage.Date) ([]storage.Violation, error)
}

type ValidateRequest struct {
	From storage.Date `json:"from" validate:"required,date"`
	To   storage.Date `json:"to" validate:"required,date"`
}

type ValidateResponse struct {
	Violations []storage.Violation `json:"violations"`
}

func AddEvent(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.AddEvent"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.EventForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		event, err := creator.AddEvent(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, event)
	}
}

// ValidateShifts проверяет расписание за период без сохранения.
func ValidateShifts(log *slog.Logger, validator ShiftValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.ValidateShifts"

		var req ValidateRequest
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		violations, err := validator.Validate(ctx, req.From, req.To)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, ValidateResponse{Violations: violations})
	}
}
