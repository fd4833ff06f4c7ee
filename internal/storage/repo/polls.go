package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func (s *Storage) ListPolls(ctx context.Context) ([]storage.Poll, error) {
	const op = "storage.repo.ListPolls"

	polls, err := load[storage.Poll](ctx, s, storage.CollectionPolls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// активные сверху, внутри: новые сверху
	slices.SortStableFunc(polls, func(a, b storage.Poll) int {
		if a.Status != b.Status {
			if a.Status == storage.PollActive {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return polls, nil
}

func (s *Storage) GetPoll(ctx context.Context, id string) (storage.Poll, error) {
	const op = "storage.repo.GetPoll"

	polls, err := load[storage.Poll](ctx, s, storage.CollectionPolls)
	if err != nil {
		return storage.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(polls, func(p storage.Poll) bool { return p.ID == id })
	if i < 0 {
		return storage.Poll{}, fmt.Errorf("%s: %w", op, notFound("poll", id))
	}
	return polls[i], nil
}

func (s *Storage) AddPoll(ctx context.Context, author string, form storage.PollForm) (storage.Poll, error) {
	const op = "storage.repo.AddPoll"

	options := make([]string, 0, len(form.Options))
	for _, o := range form.Options {
		o = strings.TrimSpace(o)
		if o == "" || slices.Contains(options, o) {
			return storage.Poll{}, fmt.Errorf("%s: option %q: %w", op, o, storage.ErrInvalidInput)
		}
		options = append(options, o)
	}
	if len(options) < 2 || len(options) > 10 {
		return storage.Poll{}, fmt.Errorf("%s: %d options: %w", op, len(options), storage.ErrInvalidInput)
	}

	p := storage.Poll{
		ID:        s.newID(),
		Question:  strings.TrimSpace(form.Question),
		Options:   options,
		Votes:     map[string]int{},
		Status:    storage.PollActive,
		Deadline:  form.Deadline,
		Author:    author,
		CreatedAt: s.now().UTC(),
	}

	err := update(ctx, s, storage.CollectionPolls, func(polls []storage.Poll) ([]storage.Poll, error) {
		return append(polls, p), nil
	})
	if err != nil {
		return storage.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// Vote записывает (или меняет) голос пользователя в активном опросе.
func (s *Storage) Vote(ctx context.Context, id, username string, option int) (storage.Poll, error) {
	const op = "storage.repo.Vote"

	var voted storage.Poll
	err := update(ctx, s, storage.CollectionPolls, func(polls []storage.Poll) ([]storage.Poll, error) {
		i := indexOf(polls, func(p storage.Poll) bool { return p.ID == id })
		if i < 0 {
			return nil, notFound("poll", id)
		}
		p := &polls[i]
		if p.Status != storage.PollActive || p.Expired(storage.DateOf(s.now())) {
			return nil, fmt.Errorf("poll %q closed: %w", id, storage.ErrInvalidState)
		}
		if option < 0 || option >= len(p.Options) {
			return nil, fmt.Errorf("option %d: %w", option, storage.ErrInvalidInput)
		}
		if p.Votes == nil {
			p.Votes = map[string]int{}
		}
		p.Votes[username] = option
		voted = *p
		return polls, nil
	})
	if err != nil {
		return storage.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return voted, nil
}

func (s *Storage) closePoll(p *storage.Poll) {
	now := s.now().UTC()
	p.Status = storage.PollCompleted
	p.ClosedAt = &now
}

// ClosePoll: active → completed, автор или админ.
func (s *Storage) ClosePoll(ctx context.Context, id string, actor storage.User) (storage.Poll, error) {
	const op = "storage.repo.ClosePoll"

	var closed storage.Poll
	err := update(ctx, s, storage.CollectionPolls, func(polls []storage.Poll) ([]storage.Poll, error) {
		i := indexOf(polls, func(p storage.Poll) bool { return p.ID == id })
		if i < 0 {
			return nil, notFound("poll", id)
		}
		if err := canModify(polls[i].Author, actor); err != nil {
			return nil, err
		}
		if polls[i].Status != storage.PollActive {
			return nil, fmt.Errorf("poll %q is %s: %w", id, polls[i].Status, storage.ErrInvalidState)
		}
		s.closePoll(&polls[i])
		closed = polls[i]
		return polls, nil
	})
	if err != nil {
		return storage.Poll{}, fmt.Errorf("%s: %w", op, err)
	}

	return closed, nil
}

// CloseExpiredPolls закрывает активные опросы с дедлайном раньше today и возвращает их.
func (s *Storage) CloseExpiredPolls(ctx context.Context, today storage.Date) ([]storage.Poll, error) {
	const op = "storage.repo.CloseExpiredPolls"

	var closed []storage.Poll
	err := update(ctx, s, storage.CollectionPolls, func(polls []storage.Poll) ([]storage.Poll, error) {
		for i := range polls {
			if polls[i].Status == storage.PollActive && polls[i].Expired(today) {
				s.closePoll(&polls[i])
				closed = append(closed, polls[i])
			}
		}
		return polls, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return closed, nil
}
