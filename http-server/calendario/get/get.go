package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/service/calendario"
	"famigliapp/internal/storage"
)

type EventsProvider interface {
	ListEvents(ctx context.Context, from, to storage.Date) ([]storage.Event, error)
}

type EmployeesProvider interface {
	ListEmployees(ctx context.Context) ([]storage.Employee, error)
}

type ScheduleProvider interface {
	Roster(ctx context.Context, from, to storage.Date) (calendario.Roster, error)
	Rules(ctx context.Context) (storage.ShiftRules, error)
}

// monthRange разбирает ?month=YYYY-MM в первый и последний день месяца.
func monthRange(month string) (storage.Date, storage.Date, bool) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", false
	}
	first := storage.DateOf(t)
	last := storage.DateOf(t.AddDate(0, 1, -1))
	return first, last, true
}

// ListEvents: события, пересекающиеся с месяцем; без month возвращаются все.
func ListEvents(log *slog.Logger, provider EventsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.ListEvents"

		var from, to storage.Date
		if month := r.URL.Query().Get("month"); month != "" {
			var ok bool
			if from, to, ok = monthRange(month); !ok {
				log.With(slog.String("op", op)).Warn("invalid month", slog.String("month", month))
				http.Error(w, "Invalid month, expected YYYY-MM", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		events, err := provider.ListEvents(ctx, from, to)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, events)
	}
}

func ListEmployees(log *slog.Logger, provider EmployeesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.ListEmployees"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		employees, err := provider.ListEmployees(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, employees)
	}
}

// ListShifts: смены за ?from&to вместе с составом и нарушениями правил.
func ListShifts(log *slog.Logger, provider ScheduleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.ListShifts"

		from := storage.Date(r.URL.Query().Get("from"))
		to := storage.Date(r.URL.Query().Get("to"))

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		roster, err := provider.Roster(ctx, from, to)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, roster)
	}
}

func GetRules(log *slog.Logger, provider ScheduleProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendario.GetRules"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rules, err := provider.Rules(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, rules)
	}
}
