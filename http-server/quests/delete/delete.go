package delete

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type QuestDeleter interface {
	DeleteQuest(ctx context.Context, id string, actor storage.User) error
}

// DeleteQuest: только открытый квест, автором или админом.
func DeleteQuest(log *slog.Logger, deleter QuestDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quests.DeleteQuest"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := deleter.DeleteQuest(ctx, chi.URLParam(r, "id"), usr); err != nil {
			response.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
