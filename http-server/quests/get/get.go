package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type QuestsProvider interface {
	ListQuests(ctx context.Context, status string) ([]storage.Quest, error)
}

func ListQuests(log *slog.Logger, provider QuestsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quests.ListQuests"

		status := r.URL.Query().Get("status")
		switch status {
		case "", storage.QuestOpen, storage.QuestAccepted, storage.QuestCompleted:
		default:
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.ListQuests(ctx, status)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, list)
	}
}
