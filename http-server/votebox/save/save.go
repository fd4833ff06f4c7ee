package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/http-server/votebox/get"
	"famigliapp/internal/storage"
)

type PollsManager interface {
	AddPoll(ctx context.Context, author string, form storage.PollForm) (storage.Poll, error)
	Vote(ctx context.Context, id, username string, option int) (storage.Poll, error)
	ClosePoll(ctx context.Context, id string, actor storage.User) (storage.Poll, error)
}

type VoteRequest struct {
	Option *int `json:"option" validate:"required,min=0"`
}

func AddPoll(log *slog.Logger, manager PollsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.votebox.AddPoll"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var form storage.PollForm
		if !response.Decode(w, r, &form) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := manager.AddPoll(ctx, usr.Username, form)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.Created(w, r, get.NewPollView(p, usr.Username))
	}
}

// Vote: голос можно менять, пока опрос активен.
func Vote(log *slog.Logger, manager PollsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.votebox.Vote"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		var req VoteRequest
		if !response.Decode(w, r, &req) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := manager.Vote(ctx, chi.URLParam(r, "id"), usr.Username, *req.Option)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, get.NewPollView(p, usr.Username))
	}
}

func ClosePoll(log *slog.Logger, manager PollsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.votebox.ClosePoll"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := manager.ClosePoll(ctx, chi.URLParam(r, "id"), usr)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		log.Info("poll closed", slog.String("op", op), slog.String("id", p.ID), slog.String("by", usr.Username))

		response.JSON(w, r, get.NewPollView(p, usr.Username))
	}
}
