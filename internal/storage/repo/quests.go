package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func (s *Storage) ListQuests(ctx context.Context, status string) ([]storage.Quest, error) {
	const op = "storage.repo.ListQuests"

	quests, err := load[storage.Quest](ctx, s, storage.CollectionQuests)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if status != "" {
		quests = slices.DeleteFunc(quests, func(q storage.Quest) bool { return q.Status != status })
	}
	slices.SortStableFunc(quests, func(a, b storage.Quest) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return quests, nil
}

func (s *Storage) AddQuest(ctx context.Context, author string, form storage.QuestForm) (storage.Quest, error) {
	const op = "storage.repo.AddQuest"

	q := storage.Quest{
		ID:        s.newID(),
		Title:     strings.TrimSpace(form.Title),
		Body:      form.Body,
		Reward:    form.Reward,
		Author:    author,
		Status:    storage.QuestOpen,
		DueOn:     form.DueOn,
		CreatedAt: s.now().UTC(),
	}

	err := update(ctx, s, storage.CollectionQuests, func(quests []storage.Quest) ([]storage.Quest, error) {
		return append(quests, q), nil
	})
	if err != nil {
		return storage.Quest{}, fmt.Errorf("%s: %w", op, err)
	}

	return q, nil
}

// AcceptQuest: open → accepted, исполнителем становится actor (не автор).
func (s *Storage) AcceptQuest(ctx context.Context, id string, actor storage.User) (storage.Quest, error) {
	const op = "storage.repo.AcceptQuest"

	var accepted storage.Quest
	err := update(ctx, s, storage.CollectionQuests, func(quests []storage.Quest) ([]storage.Quest, error) {
		i := indexOf(quests, func(q storage.Quest) bool { return q.ID == id })
		if i < 0 {
			return nil, notFound("quest", id)
		}
		q := &quests[i]
		if q.Status != storage.QuestOpen {
			return nil, fmt.Errorf("quest %q is %s: %w", id, q.Status, storage.ErrInvalidState)
		}
		if q.Author == actor.Username {
			return nil, fmt.Errorf("own quest: %w", storage.ErrForbidden)
		}
		now := s.now().UTC()
		q.Status = storage.QuestAccepted
		q.Assignee = actor.Username
		q.AcceptedAt = &now
		accepted = *q
		return quests, nil
	})
	if err != nil {
		return storage.Quest{}, fmt.Errorf("%s: %w", op, err)
	}

	return accepted, nil
}

// CompleteQuest: accepted → completed; награда начисляется исполнителю в колонку O.
func (s *Storage) CompleteQuest(ctx context.Context, id string, actor storage.User) (storage.Quest, error) {
	const op = "storage.repo.CompleteQuest"

	s.mu.Lock()
	defer s.mu.Unlock()

	var completed storage.Quest
	err := updateLocked(ctx, s, storage.CollectionQuests, func(quests []storage.Quest) ([]storage.Quest, error) {
		i := indexOf(quests, func(q storage.Quest) bool { return q.ID == id })
		if i < 0 {
			return nil, notFound("quest", id)
		}
		q := &quests[i]
		if q.Status != storage.QuestAccepted {
			return nil, fmt.Errorf("quest %q is %s: %w", id, q.Status, storage.ErrInvalidState)
		}
		if err := canModify(q.Assignee, actor); err != nil {
			return nil, err
		}
		now := s.now().UTC()
		q.Status = storage.QuestCompleted
		q.CompletedAt = &now
		completed = *q
		return quests, nil
	})
	if err != nil {
		return storage.Quest{}, fmt.Errorf("%s: %w", op, err)
	}

	if completed.Reward > 0 {
		delta := storage.PointsDelta{DeltaO: completed.Reward, Reason: "quest: " + completed.Title}
		if _, err := s.applyPointsLocked(ctx, completed.Assignee, delta, actor.Username); err != nil {
			// без начисленной награды квест возвращается в accepted, чтобы завершение можно было повторить
			rerr := updateLocked(ctx, s, storage.CollectionQuests, func(quests []storage.Quest) ([]storage.Quest, error) {
				if i := indexOf(quests, func(q storage.Quest) bool { return q.ID == id }); i >= 0 {
					quests[i].Status = storage.QuestAccepted
					quests[i].CompletedAt = nil
				}
				return quests, nil
			})
			return storage.Quest{}, fmt.Errorf("%s: reward: %w", op, errors.Join(err, rerr))
		}
	}

	return completed, nil
}

// DeleteQuest: автор или админ, только пока квест открыт.
func (s *Storage) DeleteQuest(ctx context.Context, id string, actor storage.User) error {
	const op = "storage.repo.DeleteQuest"

	err := update(ctx, s, storage.CollectionQuests, func(quests []storage.Quest) ([]storage.Quest, error) {
		i := indexOf(quests, func(q storage.Quest) bool { return q.ID == id })
		if i < 0 {
			return nil, notFound("quest", id)
		}
		if err := canModify(quests[i].Author, actor); err != nil {
			return nil, err
		}
		if quests[i].Status != storage.QuestOpen {
			return nil, fmt.Errorf("quest %q is %s: %w", id, quests[i].Status, storage.ErrInvalidState)
		}
		return slices.Delete(quests, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
