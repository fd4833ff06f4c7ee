package dashboard

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"famigliapp/internal/storage"
)

// upcomingDays: сколько дней, включая сегодня, показывать в блоке событий.
const upcomingDays = 7

type Storage interface {
	Today() storage.Date
	ListEvents(ctx context.Context, from, to storage.Date) ([]storage.Event, error)
	PendingKouza(ctx context.Context, username string, today storage.Date) ([]storage.Kouza, error)
	ListQuests(ctx context.Context, status string) ([]storage.Quest, error)
	ListPolls(ctx context.Context) ([]storage.Poll, error)
	Ranking(ctx context.Context) ([]storage.RankedPoints, error)
}

type Dashboard struct {
	Today        storage.Date         `json:"today"`
	Events       []storage.Event      `json:"events"`
	PendingKouza []storage.Kouza      `json:"pending_kouza"`
	OpenQuests   []storage.Quest      `json:"open_quests"`
	MyQuests     []storage.Quest      `json:"my_quests"`
	Polls        []storage.Poll       `json:"polls"`
	Points       storage.RankedPoints `json:"points"`
}

type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Load собирает главную страницу для пользователя, коллекции читаются параллельно.
func (s *Service) Load(ctx context.Context, user storage.User) (Dashboard, error) {
	const op = "service.dashboard.Load"

	today := s.storage.Today()
	d := Dashboard{Today: today}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := s.storage.ListEvents(ctx, today, today.AddDays(upcomingDays-1))
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		d.Events = events
		return nil
	})

	g.Go(func() error {
		pending, err := s.storage.PendingKouza(ctx, user.Username, today)
		if err != nil {
			return fmt.Errorf("kouza: %w", err)
		}
		d.PendingKouza = pending
		return nil
	})

	g.Go(func() error {
		open, err := s.storage.ListQuests(ctx, storage.QuestOpen)
		if err != nil {
			return fmt.Errorf("open quests: %w", err)
		}
		d.OpenQuests = open
		return nil
	})

	g.Go(func() error {
		accepted, err := s.storage.ListQuests(ctx, storage.QuestAccepted)
		if err != nil {
			return fmt.Errorf("accepted quests: %w", err)
		}
		d.MyQuests = slices.DeleteFunc(accepted, func(q storage.Quest) bool {
			return q.Assignee != user.Username
		})
		return nil
	})

	g.Go(func() error {
		polls, err := s.storage.ListPolls(ctx)
		if err != nil {
			return fmt.Errorf("polls: %w", err)
		}
		d.Polls = slices.DeleteFunc(polls, func(p storage.Poll) bool {
			_, voted := p.Votes[user.Username]
			return p.Status != storage.PollActive || voted
		})
		return nil
	})

	g.Go(func() error {
		ranking, err := s.storage.Ranking(ctx)
		if err != nil {
			return fmt.Errorf("ranking: %w", err)
		}
		d.Points = myPoints(ranking, user.Username)
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}

// myPoints: строка пользователя в рейтинге; без очков ранг 0.
func myPoints(ranking []storage.RankedPoints, username string) storage.RankedPoints {
	for _, p := range ranking {
		if p.Username == username {
			return p
		}
	}
	return storage.RankedPoints{Points: storage.Points{Username: username}}
}
