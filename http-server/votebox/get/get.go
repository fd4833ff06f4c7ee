package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"famigliapp/http-server/response"
	"famigliapp/internal/storage"
)

type PollsProvider interface {
	ListPolls(ctx context.Context) ([]storage.Poll, error)
	GetPoll(ctx context.Context, id string) (storage.Poll, error)
}

// PollView: опрос с подсчётом голосов и голосом текущего пользователя.
type PollView struct {
	storage.Poll
	Results []int `json:"results"`
	MyVote  *int  `json:"my_vote"`
}

func NewPollView(p storage.Poll, username string) PollView {
	view := PollView{Poll: p, Results: p.Results()}
	if v, ok := p.Votes[username]; ok {
		view.MyVote = &v
	}
	return view
}

func ListPolls(log *slog.Logger, provider PollsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.votebox.ListPolls"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		polls, err := provider.ListPolls(ctx)
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		views := make([]PollView, 0, len(polls))
		for _, p := range polls {
			views = append(views, NewPollView(p, usr.Username))
		}

		response.JSON(w, r, views)
	}
}

func GetPoll(log *slog.Logger, provider PollsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.votebox.GetPoll"

		usr, ok := response.CurrentUser(w, r)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := provider.GetPoll(ctx, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, log, op, err)
			return
		}

		response.JSON(w, r, NewPollView(p, usr.Username))
	}
}
