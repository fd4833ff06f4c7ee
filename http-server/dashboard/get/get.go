package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/service/dashboard"
	"famigliapp/internal/storage"
)

type DashboardProvider interface {
	Load(ctx context.Context, user storage.User) (dashboard.Dashboard, error)
}

func GetDashboard(log *slog.Logger, provider DashboardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetDashboard"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		d, err := provider.Load(ctx, usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, d)
	}
}
