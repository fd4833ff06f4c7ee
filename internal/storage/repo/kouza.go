package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func (s *Storage) ListKouza(ctx context.Context) ([]storage.Kouza, error) {
	const op = "storage.repo.ListKouza"

	items, err := load[storage.Kouza](ctx, s, storage.CollectionKouza)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.SortStableFunc(items, func(a, b storage.Kouza) int {
		return strings.Compare(string(b.HeldOn), string(a.HeldOn))
	})
	return items, nil
}

func (s *Storage) AddKouza(ctx context.Context, author string, form storage.KouzaForm) (storage.Kouza, error) {
	const op = "storage.repo.AddKouza"

	deadline := s.defaultDeadlineDays
	if form.DeadlineDays != nil {
		deadline = *form.DeadlineDays
	}

	k := storage.Kouza{
		ID:           s.newID(),
		Title:        strings.TrimSpace(form.Title),
		HeldOn:       form.HeldOn,
		DeadlineDays: deadline,
		Author:       author,
		CreatedAt:    s.now().UTC(),
	}

	err := update(ctx, s, storage.CollectionKouza, func(items []storage.Kouza) ([]storage.Kouza, error) {
		return append(items, k), nil
	})
	if err != nil {
		return storage.Kouza{}, fmt.Errorf("%s: %w", op, err)
	}

	return k, nil
}

// DeleteKouza удаляет семинар вместе с отзывами на него.
func (s *Storage) DeleteKouza(ctx context.Context, id string) error {
	const op = "storage.repo.DeleteKouza"

	s.mu.Lock()
	defer s.mu.Unlock()

	err := updateLocked(ctx, s, storage.CollectionKouza, func(items []storage.Kouza) ([]storage.Kouza, error) {
		i := indexOf(items, func(k storage.Kouza) bool { return k.ID == id })
		if i < 0 {
			return nil, notFound("kouza", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = updateLocked(ctx, s, storage.CollectionKouzaFeedback, func(fb []storage.KouzaFeedback) ([]storage.KouzaFeedback, error) {
		return slices.DeleteFunc(fb, func(f storage.KouzaFeedback) bool { return f.KouzaID == id }), nil
	})
	if err != nil {
		return fmt.Errorf("%s: feedback: %w", op, err)
	}

	return nil
}

func (s *Storage) getKouza(ctx context.Context, id string) (storage.Kouza, error) {
	items, err := load[storage.Kouza](ctx, s, storage.CollectionKouza)
	if err != nil {
		return storage.Kouza{}, err
	}
	i := indexOf(items, func(k storage.Kouza) bool { return k.ID == id })
	if i < 0 {
		return storage.Kouza{}, notFound("kouza", id)
	}
	return items[i], nil
}

// SubmitKouzaFeedback принимает отзыв только внутри окна [held_on, held_on+deadline_days].
// Повторная отправка заменяет прежний отзыв автора.
func (s *Storage) SubmitKouzaFeedback(ctx context.Context, kouzaID, author string, form storage.KouzaFeedbackForm) (storage.KouzaFeedback, error) {
	const op = "storage.repo.SubmitKouzaFeedback"

	k, err := s.getKouza(ctx, kouzaID)
	if err != nil {
		return storage.KouzaFeedback{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	today := storage.DateOf(now)
	switch {
	case today.Before(k.HeldOn):
		return storage.KouzaFeedback{}, fmt.Errorf("%s: kouza %q held on %s: %w", op, kouzaID, k.HeldOn, storage.ErrNotYetHeld)
	case today.After(k.Deadline()):
		return storage.KouzaFeedback{}, fmt.Errorf("%s: kouza %q closed on %s: %w", op, kouzaID, k.Deadline(), storage.ErrDeadlinePassed)
	}

	fb := storage.KouzaFeedback{
		ID:          s.newID(),
		KouzaID:     kouzaID,
		Author:      author,
		Body:        strings.TrimSpace(form.Body),
		SubmittedAt: now.UTC(),
	}

	err = update(ctx, s, storage.CollectionKouzaFeedback, func(all []storage.KouzaFeedback) ([]storage.KouzaFeedback, error) {
		i := indexOf(all, func(f storage.KouzaFeedback) bool { return f.KouzaID == kouzaID && f.Author == author })
		if i >= 0 {
			fb.ID = all[i].ID
			all[i] = fb
			return all, nil
		}
		return append(all, fb), nil
	})
	if err != nil {
		return storage.KouzaFeedback{}, fmt.Errorf("%s: %w", op, err)
	}

	return fb, nil
}

// ListKouzaFeedback: при пустом author возвращаются все отзывы.
func (s *Storage) ListKouzaFeedback(ctx context.Context, kouzaID, author string) ([]storage.KouzaFeedback, error) {
	const op = "storage.repo.ListKouzaFeedback"

	if _, err := s.getKouza(ctx, kouzaID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := load[storage.KouzaFeedback](ctx, s, storage.CollectionKouzaFeedback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all = slices.DeleteFunc(all, func(f storage.KouzaFeedback) bool {
		return f.KouzaID != kouzaID || (author != "" && f.Author != author)
	})
	slices.SortStableFunc(all, func(a, b storage.KouzaFeedback) int { return a.SubmittedAt.Compare(b.SubmittedAt) })
	return all, nil
}

// PendingKouza: открытые на today семинары, на которые username ещё не оставил отзыв.
func (s *Storage) PendingKouza(ctx context.Context, username string, today storage.Date) ([]storage.Kouza, error) {
	const op = "storage.repo.PendingKouza"

	items, err := s.ListKouza(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := load[storage.KouzaFeedback](ctx, s, storage.CollectionKouzaFeedback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	done := make(map[string]bool)
	for _, f := range all {
		if f.Author == username {
			done[f.KouzaID] = true
		}
	}

	pending := slices.DeleteFunc(items, func(k storage.Kouza) bool {
		return !k.Open(today) || done[k.ID]
	})
	return pending, nil
}

// KouzaFeedbackAuthors: множество авторов отзывов по каждому семинару.
func (s *Storage) KouzaFeedbackAuthors(ctx context.Context) (map[string]map[string]bool, error) {
	const op = "storage.repo.KouzaFeedbackAuthors"

	all, err := load[storage.KouzaFeedback](ctx, s, storage.CollectionKouzaFeedback)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	authors := make(map[string]map[string]bool)
	for _, f := range all {
		if authors[f.KouzaID] == nil {
			authors[f.KouzaID] = make(map[string]bool)
		}
		authors[f.KouzaID][f.Author] = true
	}
	return authors, nil
}
