package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

// ListResoconti: новые даты сверху.
func (s *Storage) ListResoconti(ctx context.Context, filter storage.ResocontoFilter) ([]storage.Resoconto, error) {
	const op = "storage.repo.ListResoconti"

	reports, err := load[storage.Resoconto](ctx, s, storage.CollectionResoconto)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reports = slices.DeleteFunc(reports, func(r storage.Resoconto) bool {
		return (filter.Author != "" && r.Author != filter.Author) ||
			(filter.From != "" && r.Date.Before(filter.From)) ||
			(filter.To != "" && r.Date.After(filter.To))
	})
	slices.SortStableFunc(reports, func(a, b storage.Resoconto) int {
		if c := strings.Compare(string(b.Date), string(a.Date)); c != 0 {
			return c
		}
		return strings.Compare(a.Author, b.Author)
	})
	return reports, nil
}

func (s *Storage) GetResoconto(ctx context.Context, id string) (storage.Resoconto, error) {
	const op = "storage.repo.GetResoconto"

	reports, err := load[storage.Resoconto](ctx, s, storage.CollectionResoconto)
	if err != nil {
		return storage.Resoconto{}, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(reports, func(r storage.Resoconto) bool { return r.ID == id })
	if i < 0 {
		return storage.Resoconto{}, fmt.Errorf("%s: %w", op, notFound("resoconto", id))
	}
	return reports[i], nil
}

// AddResoconto: не больше одного отчёта на автора за день.
func (s *Storage) AddResoconto(ctx context.Context, author string, form storage.ResocontoForm) (storage.Resoconto, error) {
	const op = "storage.repo.AddResoconto"

	now := s.now().UTC()
	report := storage.Resoconto{
		ID:        s.newID(),
		Author:    author,
		Date:      form.Date,
		Body:      form.Body,
		Feedback:  []storage.Feedback{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := update(ctx, s, storage.CollectionResoconto, func(reports []storage.Resoconto) ([]storage.Resoconto, error) {
		if indexOf(reports, func(r storage.Resoconto) bool { return r.Author == author && r.Date == form.Date }) >= 0 {
			return nil, fmt.Errorf("resoconto %s/%s: %w", author, form.Date, storage.ErrConflict)
		}
		return append(reports, report), nil
	})
	if err != nil {
		return storage.Resoconto{}, fmt.Errorf("%s: %w", op, err)
	}

	return report, nil
}

// UpdateResoconto: править может только автор.
func (s *Storage) UpdateResoconto(ctx context.Context, id string, form storage.ResocontoForm, actor storage.User) (storage.Resoconto, error) {
	const op = "storage.repo.UpdateResoconto"

	var updated storage.Resoconto
	err := update(ctx, s, storage.CollectionResoconto, func(reports []storage.Resoconto) ([]storage.Resoconto, error) {
		i := indexOf(reports, func(r storage.Resoconto) bool { return r.ID == id })
		if i < 0 {
			return nil, notFound("resoconto", id)
		}
		if reports[i].Author != actor.Username {
			return nil, storage.ErrForbidden
		}
		dup := indexOf(reports, func(r storage.Resoconto) bool {
			return r.ID != id && r.Author == actor.Username && r.Date == form.Date
		})
		if dup >= 0 {
			return nil, fmt.Errorf("resoconto %s/%s: %w", actor.Username, form.Date, storage.ErrConflict)
		}
		reports[i].Date = form.Date
		reports[i].Body = form.Body
		reports[i].UpdatedAt = s.now().UTC()
		updated = reports[i]
		return reports, nil
	})
	if err != nil {
		return storage.Resoconto{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteResoconto(ctx context.Context, id string, actor storage.User) error {
	const op = "storage.repo.DeleteResoconto"

	err := update(ctx, s, storage.CollectionResoconto, func(reports []storage.Resoconto) ([]storage.Resoconto, error) {
		i := indexOf(reports, func(r storage.Resoconto) bool { return r.ID == id })
		if i < 0 {
			return nil, notFound("resoconto", id)
		}
		if err := canModify(reports[i].Author, actor); err != nil {
			return nil, err
		}
		return slices.Delete(reports, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) AddResocontoFeedback(ctx context.Context, id, author, body string) (storage.Resoconto, error) {
	const op = "storage.repo.AddResocontoFeedback"

	var updated storage.Resoconto
	err := update(ctx, s, storage.CollectionResoconto, func(reports []storage.Resoconto) ([]storage.Resoconto, error) {
		i := indexOf(reports, func(r storage.Resoconto) bool { return r.ID == id })
		if i < 0 {
			return nil, notFound("resoconto", id)
		}
		reports[i].Feedback = append(reports[i].Feedback, storage.Feedback{
			Author:    author,
			Body:      strings.TrimSpace(body),
			CreatedAt: s.now().UTC(),
		})
		updated = reports[i]
		return reports, nil
	})
	if err != nil {
		return storage.Resoconto{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}
