package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

// Ranking сортирует по сумме A+O+U (по убыванию), затем по имени; равные суммы делят место.
func (s *Storage) Ranking(ctx context.Context) ([]storage.RankedPoints, error) {
	const op = "storage.repo.Ranking"

	points, err := load[storage.Points](ctx, s, storage.CollectionPoints)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slices.SortFunc(points, func(a, b storage.Points) int {
		if a.Total() != b.Total() {
			return b.Total() - a.Total()
		}
		return strings.Compare(a.Username, b.Username)
	})

	ranking := make([]storage.RankedPoints, 0, len(points))
	for i, p := range points {
		rank := i + 1
		if i > 0 && p.Total() == points[i-1].Total() {
			rank = ranking[i-1].Rank
		}
		ranking = append(ranking, storage.RankedPoints{Rank: rank, Points: p, Total: p.Total()})
	}
	return ranking, nil
}

// ApplyPoints прибавляет дельты (строка создаётся при необходимости) и пишет историю.
func (s *Storage) ApplyPoints(ctx context.Context, username string, delta storage.PointsDelta, by string) (storage.Points, error) {
	const op = "storage.repo.ApplyPoints"

	if _, err := s.GetUser(ctx, username); err != nil {
		return storage.Points{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.applyPointsLocked(ctx, username, delta, by)
	if err != nil {
		return storage.Points{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *Storage) applyPointsLocked(ctx context.Context, username string, delta storage.PointsDelta, by string) (storage.Points, error) {
	var result storage.Points
	err := updateLocked(ctx, s, storage.CollectionPoints, func(points []storage.Points) ([]storage.Points, error) {
		i := indexOf(points, func(p storage.Points) bool { return p.Username == username })
		if i < 0 {
			points = append(points, storage.Points{Username: username})
			i = len(points) - 1
		}
		points[i].A += delta.DeltaA
		points[i].O += delta.DeltaO
		points[i].U += delta.DeltaU
		result = points[i]
		return points, nil
	})
	if err != nil {
		return storage.Points{}, err
	}

	entry := storage.PointsHistory{
		ID:       s.newID(),
		Username: username,
		DeltaA:   delta.DeltaA,
		DeltaO:   delta.DeltaO,
		DeltaU:   delta.DeltaU,
		Reason:   strings.TrimSpace(delta.Reason),
		By:       by,
		At:       s.now().UTC(),
	}
	err = updateLocked(ctx, s, storage.CollectionPointsHistory, func(h []storage.PointsHistory) ([]storage.PointsHistory, error) {
		return append(h, entry), nil
	})
	if err != nil {
		return storage.Points{}, fmt.Errorf("history: %w", err)
	}

	return result, nil
}

// PointsHistory: новые записи сверху.
func (s *Storage) PointsHistory(ctx context.Context, username string) ([]storage.PointsHistory, error) {
	const op = "storage.repo.PointsHistory"

	history, err := load[storage.PointsHistory](ctx, s, storage.CollectionPointsHistory)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	history = slices.DeleteFunc(history, func(h storage.PointsHistory) bool { return h.Username != username })
	slices.SortStableFunc(history, func(a, b storage.PointsHistory) int { return b.At.Compare(a.At) })
	return history, nil
}
