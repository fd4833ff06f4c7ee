package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type EventUpdater interface {
	UpdateEvent(ctx context.Context, id string, form storage.EventForm, actor storage.User) (storage.Event, error)
}

type EmployeesUpdater interface {
	ReplaceEmployees(ctx context.Context, employees []storage.Employee) error
}

type RulesUpdater interface {
	SaveShiftRules(ctx context.Context, rules storage.ShiftRules) error
}

type ShiftsSaver interface {
	SaveShifts(ctx context.Context, upd storage.ShiftsUpdate) ([]storage.Violation, error)
}

type EmployeesRequest struct {
	Employees []storage.Employee `json:"employees" validate:"dive"`
}

type ShiftsResponse struct {
	Saved      int                 `json:"saved"`
	Violations []storage.Violation `json:"violations"`
}

// UpdateEvent: менять событие может автор или админ.
func UpdateEvent(log *slog.Logger, updater EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.UpdateEvent"

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

		event, err := updater.UpdateEvent(ctx, chi.URLParam(r, "id"), form, usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, event)
	}
}

// ReplaceEmployees заменяет состав целиком.
func ReplaceEmployees(log *slog.Logger, updater EmployeesUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.ReplaceEmployees"

		var req EmployeesRequest
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.ReplaceEmployees(ctx, req.Employees); err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("employees replaced", slog.String("op", op), slog.Int("count", len(req.Employees)))

		response.JSON(w, r, req.Employees)
	}
}

// SaveShifts заменяет смены периода; нарушения возвращаются как предупреждения.
func SaveShifts(log *slog.Logger, saver ShiftsSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.SaveShifts"

		var upd storage.ShiftsUpdate
		if !response.Decode(w, r, &upd) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		violations, err := saver.SaveShifts(ctx, upd)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, ShiftsResponse{Saved: len(upd.Shifts), Violations: violations})
	}
}

func SaveRules(log *slog.Logger, updater RulesUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.SaveRules"

		var rules storage.ShiftRules
		if !response.Decode(w, r, &rules) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.SaveShiftRules(ctx, rules); err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, rules)
	}
}
