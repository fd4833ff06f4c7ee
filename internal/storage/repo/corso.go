package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func (s *Storage) ListCorsi(ctx context.Context) ([]storage.Corso, error) {
	const op = "storage.repo.ListCorsi"

	corsi, err := load[storage.Corso](ctx, s, storage.CollectionCorso)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.SortStableFunc(corsi, func(a, b storage.Corso) int {
		if c := strings.Compare(string(a.StartsOn), string(b.StartsOn)); c != 0 {
			return c
		}
		return strings.Compare(a.Title, b.Title)
	})
	return corsi, nil
}

func checkCorsoDates(form storage.CorsoForm) error {
	if form.EndsOn != nil && form.EndsOn.Before(form.StartsOn) {
		return fmt.Errorf("ends_on before starts_on: %w", storage.ErrInvalidInput)
	}
	return nil
}

func (s *Storage) AddCorso(ctx context.Context, author string, form storage.CorsoForm) (storage.Corso, error) {
	const op = "storage.repo.AddCorso"

	if err := checkCorsoDates(form); err != nil {
		return storage.Corso{}, fmt.Errorf("%s: %w", op, err)
	}

	corso := storage.Corso{
		ID:        s.newID(),
		Author:    author,
		Title:     strings.TrimSpace(form.Title),
		Body:      form.Body,
		StartsOn:  form.StartsOn,
		EndsOn:    form.EndsOn,
		CreatedAt: s.now().UTC(),
	}

	err := update(ctx, s, storage.CollectionCorso, func(corsi []storage.Corso) ([]storage.Corso, error) {
		return append(corsi, corso), nil
	})
	if err != nil {
		return storage.Corso{}, fmt.Errorf("%s: %w", op, err)
	}

	return corso, nil
}

func (s *Storage) UpdateCorso(ctx context.Context, id string, form storage.CorsoForm) (storage.Corso, error) {
	const op = "storage.repo.UpdateCorso"

	if err := checkCorsoDates(form); err != nil {
		return storage.Corso{}, fmt.Errorf("%s: %w", op, err)
	}

	var updated storage.Corso
	err := update(ctx, s, storage.CollectionCorso, func(corsi []storage.Corso) ([]storage.Corso, error) {
		i := indexOf(corsi, func(c storage.Corso) bool { return c.ID == id })
		if i < 0 {
			return nil, notFound("corso", id)
		}
		corsi[i].Title = strings.TrimSpace(form.Title)
		corsi[i].Body = form.Body
		corsi[i].StartsOn = form.StartsOn
		corsi[i].EndsOn = form.EndsOn
		updated = corsi[i]
		return corsi, nil
	})
	if err != nil {
		return storage.Corso{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteCorso(ctx context.Context, id string) error {
	const op = "storage.repo.DeleteCorso"

	err := update(ctx, s, storage.CollectionCorso, func(corsi []storage.Corso) ([]storage.Corso, error) {
		i := indexOf(corsi, func(c storage.Corso) bool { return c.ID == id })
		if i < 0 {
			return nil, notFound("corso", id)
		}
		return slices.Delete(corsi, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
