package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type QuestsManager interface {
	AddQuest(ctx context.Context, author string, form storage.QuestForm) (storage.Quest, error)
	AcceptQuest(ctx context.Context, id string, actor storage.User) (storage.Quest, error)
	CompleteQuest(ctx context.Context, id string, actor storage.User) (storage.Quest, error)
}

func AddQuest(log *slog.Logger, manager QuestsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.quests.AddQuest"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.QuestForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		q, err := manager.AddQuest(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, q)
	}
}

// AcceptQuest: open → accepted, исполнитель: текущий пользователь.
func AcceptQuest(log *slog.Logger, manager QuestsManager) http.HandlerFunc {
	return transition(log, "handlers.quests.AcceptQuest", manager.AcceptQuest)
}

// CompleteQuest: accepted → completed, награда начисляется исполнителю.
func CompleteQuest(log *slog.Logger, manager QuestsManager) http.HandlerFunc {
	return transition(log, "handlers.quests.CompleteQuest", manager.CompleteQuest)
}

func transition(log *slog.Logger, op string, apply func(ctx context.Context, id string, actor storage.User) (storage.Quest, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		q, err := apply(ctx, chi.URLParam(r, "id"), usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("quest updated",
			slog.String("op", op),
			slog.String("id", q.ID),
			slog.String("status", q.Status),
			slog.String("by", usr.Username),
		)

		response.JSON(w, r, q)
	}
}
