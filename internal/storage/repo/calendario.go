package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"famigliapp/internal/storage"
)

func compareEvents(a, b storage.Event) int {
	if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
		return c
	}
	return strings.Compare(a.Title, b.Title)
}

// ListEvents возвращает события, пересекающиеся с [from, to]; пустые границы: без ограничения.
func (s *Storage) ListEvents(ctx context.Context, from, to storage.Date) ([]storage.Event, error) {
	const op = "storage.repo.ListEvents"

	events, err := load[storage.Event](ctx, s, storage.CollectionEvents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	events = slices.DeleteFunc(events, func(e storage.Event) bool {
		return (to != "" && e.Date.After(to)) || (from != "" && e.LastDay().Before(from))
	})
	slices.SortStableFunc(events, compareEvents)
	return events, nil
}

func (s *Storage) GetEvent(ctx context.Context, id string) (storage.Event, error) {
	const op = "storage.repo.GetEvent"

	events, err := load[storage.Event](ctx, s, storage.CollectionEvents)
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(events, func(e storage.Event) bool { return e.ID == id })
	if i < 0 {
		return storage.Event{}, fmt.Errorf("%s: %w", op, notFound("event", id))
	}
	return events[i], nil
}

func checkEventDates(form storage.EventForm) error {
	if form.EndDate != nil && form.EndDate.Before(form.Date) {
		return fmt.Errorf("end_date before date: %w", storage.ErrInvalidInput)
	}
	return nil
}

func applyEventForm(e *storage.Event, form storage.EventForm) {
	e.Title = strings.TrimSpace(form.Title)
	e.Date = form.Date
	e.EndDate = form.EndDate
	e.Category = strings.TrimSpace(form.Category)
	e.Participants = form.Participants
	e.Description = form.Description
	e.NotifyDaysBefore = form.NotifyDaysBefore
}

func (s *Storage) AddEvent(ctx context.Context, author string, form storage.EventForm) (storage.Event, error) {
	const op = "storage.repo.AddEvent"

	if err := checkEventDates(form); err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	event := storage.Event{
		ID:        s.newID(),
		Author:    author,
		CreatedAt: s.now().UTC(),
	}
	applyEventForm(&event, form)

	err := update(ctx, s, storage.CollectionEvents, func(events []storage.Event) ([]storage.Event, error) {
		return append(events, event), nil
	})
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return event, nil
}

func (s *Storage) UpdateEvent(ctx context.Context, id string, form storage.EventForm, actor storage.User) (storage.Event, error) {
	const op = "storage.repo.UpdateEvent"

	if err := checkEventDates(form); err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	var updated storage.Event
	err := update(ctx, s, storage.CollectionEvents, func(events []storage.Event) ([]storage.Event, error) {
		i := indexOf(events, func(e storage.Event) bool { return e.ID == id })
		if i < 0 {
			return nil, notFound("event", id)
		}
		if err := canModify(events[i].Author, actor); err != nil {
			return nil, err
		}
		applyEventForm(&events[i], form)
		updated = events[i]
		return events, nil
	})
	if err != nil {
		return storage.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return updated, nil
}

func (s *Storage) DeleteEvent(ctx context.Context, id string, actor storage.User) error {
	const op = "storage.repo.DeleteEvent"

	err := update(ctx, s, storage.CollectionEvents, func(events []storage.Event) ([]storage.Event, error) {
		i := indexOf(events, func(e storage.Event) bool { return e.ID == id })
		if i < 0 {
			return nil, notFound("event", id)
		}
		if err := canModify(events[i].Author, actor); err != nil {
			return nil, err
		}
		return slices.Delete(events, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) ListEmployees(ctx context.Context) ([]storage.Employee, error) {
	const op = "storage.repo.ListEmployees"

	employees, err := load[storage.Employee](ctx, s, storage.CollectionEmployees)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return employees, nil
}

// ReplaceEmployees заменяет весь список сотрудников; имена должны быть уникальны.
func (s *Storage) ReplaceEmployees(ctx context.Context, employees []storage.Employee) error {
	const op = "storage.repo.ReplaceEmployees"

	seen := make(map[string]bool, len(employees))
	for i := range employees {
		employees[i].Name = strings.TrimSpace(employees[i].Name)
		if employees[i].Name == "" || seen[employees[i].Name] {
			return fmt.Errorf("%s: employee %q: %w", op, employees[i].Name, storage.ErrInvalidInput)
		}
		seen[employees[i].Name] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := save(ctx, s, storage.CollectionEmployees, employees); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func compareShifts(a, b storage.Shift) int {
	if c := strings.Compare(string(a.Date), string(b.Date)); c != 0 {
		return c
	}
	return strings.Compare(a.Employee, b.Employee)
}

func (s *Storage) ListShifts(ctx context.Context, from, to storage.Date) ([]storage.Shift, error) {
	const op = "storage.repo.ListShifts"

	shifts, err := load[storage.Shift](ctx, s, storage.CollectionShifts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	shifts = slices.DeleteFunc(shifts, func(sh storage.Shift) bool {
		return (from != "" && sh.Date.Before(from)) || (to != "" && sh.Date.After(to))
	})
	slices.SortFunc(shifts, compareShifts)
	return shifts, nil
}

// ReplaceShifts заменяет назначения внутри [from, to]; назначения вне диапазона не трогаются.
func (s *Storage) ReplaceShifts(ctx context.Context, from, to storage.Date, shifts []storage.Shift) error {
	const op = "storage.repo.ReplaceShifts"

	if to.Before(from) {
		return fmt.Errorf("%s: range %s..%s: %w", op, from, to, storage.ErrInvalidInput)
	}
	for _, sh := range shifts {
		if !sh.Date.Between(from, to) {
			return fmt.Errorf("%s: shift %s outside %s..%s: %w", op, sh.Date, from, to, storage.ErrInvalidInput)
		}
	}

	err := update(ctx, s, storage.CollectionShifts, func(all []storage.Shift) ([]storage.Shift, error) {
		all = slices.DeleteFunc(all, func(sh storage.Shift) bool { return sh.Date.Between(from, to) })
		all = append(all, shifts...)
		slices.SortFunc(all, compareShifts)
		return slices.CompactFunc(all, func(a, b storage.Shift) bool { return compareShifts(a, b) == 0 }), nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetShiftRules возвращает сохранённые правила; ok=false, если их ещё не сохраняли.
func (s *Storage) GetShiftRules(ctx context.Context) (storage.ShiftRules, bool, error) {
	const op = "storage.repo.GetShiftRules"

	var rules *storage.ShiftRules
	if err := s.backend.Load(ctx, storage.CollectionShiftRules, &rules); err != nil {
		return storage.ShiftRules{}, false, fmt.Errorf("%s: %w", op, err)
	}
	if rules == nil {
		return storage.ShiftRules{}, false, nil
	}
	return *rules, true, nil
}

func (s *Storage) SaveShiftRules(ctx context.Context, rules storage.ShiftRules) error {
	const op = "storage.repo.SaveShiftRules"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, storage.CollectionShiftRules, rules); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
