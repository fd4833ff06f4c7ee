package repo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

// ListBravissimo: новые сверху; target фильтрует по адресату.
func (s *Storage) ListBravissimo(ctx context.Context, target string) ([]storage.Bravissimo, error) {
	const op = "storage.repo.ListBravissimo"

	posts, err := load[storage.Bravissimo](ctx, s, storage.CollectionBravissimo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if target != "" {
		posts = slices.DeleteFunc(posts, func(p storage.Bravissimo) bool { return p.Target != target })
	}

	slices.SortStableFunc(posts, func(a, b storage.Bravissimo) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return posts, nil
}

func (s *Storage) AddBravissimo(ctx context.Context, author string, form storage.NewBravissimo) (storage.Bravissimo, error) {
	const op = "storage.repo.AddBravissimo"

	target := strings.TrimSpace(form.Target)
	if _, err := s.GetUser(ctx, target); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.Bravissimo{}, fmt.Errorf("%s: target %q: %w", op, target, storage.ErrInvalidInput)
		}
		return storage.Bravissimo{}, fmt.Errorf("%s: target: %w", op, err)
	}

	post := storage.Bravissimo{
		ID:        s.newID(),
		Author:    author,
		Target:    target,
		Text:      strings.TrimSpace(form.Text),
		CreatedAt: s.now().UTC(),
	}

	err := update(ctx, s, storage.CollectionBravissimo, func(posts []storage.Bravissimo) ([]storage.Bravissimo, error) {
		return append(posts, post), nil
	})
	if err != nil {
		return storage.Bravissimo{}, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

func (s *Storage) DeleteBravissimo(ctx context.Context, id string, actor storage.User) error {
	const op = "storage.repo.DeleteBravissimo"

	err := update(ctx, s, storage.CollectionBravissimo, func(posts []storage.Bravissimo) ([]storage.Bravissimo, error) {
		i := indexOf(posts, func(p storage.Bravissimo) bool { return p.ID == id })
		if i < 0 {
			return nil, notFound("bravissimo", id)
		}
		if err := canModify(posts[i].Author, actor); err != nil {
			return nil, err
		}
		return slices.Delete(posts, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
