package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"famigliapp/internal/storage"
)

// Storage реализует операции всех модулей поверх storage.Backend:
// загрузить коллекцию, изменить, сохранить целиком.
type Storage struct {
	backend storage.Backend

	// mu сериализует read-modify-write внутри процесса
	mu sync.Mutex

	now                 func() time.Time
	newID               func() string
	defaultDeadlineDays int
}

type Option func(*Storage)

func WithClock(now func() time.Time) Option {
	return func(s *Storage) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Storage) { s.newID = gen }
}

func WithKouzaDeadlineDays(days int) Option {
	return func(s *Storage) { s.defaultDeadlineDays = days }
}

func New(backend storage.Backend, opts ...Option) *Storage {
	s := &Storage{
		backend:             backend,
		now:                 time.Now,
		newID:               uuid.NewString,
		defaultDeadlineDays: 7,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Storage) Today() storage.Date {
	return storage.DateOf(s.now())
}

func load[T any](ctx context.Context, s *Storage, collection string) ([]T, error) {
	var items []T
	if err := s.backend.Load(ctx, collection, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func save[T any](ctx context.Context, s *Storage, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return s.backend.Save(ctx, collection, items)
}

// update загружает коллекцию, применяет fn и сохраняет результат под общей блокировкой.
func update[T any](ctx context.Context, s *Storage, collection string, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return updateLocked(ctx, s, collection, fn)
}

func updateLocked[T any](ctx context.Context, s *Storage, collection string, fn func([]T) ([]T, error)) error {
	items, err := load[T](ctx, s, collection)
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}

	return save(ctx, s, collection, items)
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i, it := range items {
		if match(it) {
			return i
		}
	}
	return -1
}

func canModify(author string, actor storage.User) error {
	if actor.IsAdmin() || author == actor.Username {
		return nil
	}
	return storage.ErrForbidden
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %q: %w", what, id, storage.ErrNotFound)
}
