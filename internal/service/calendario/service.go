package calendario

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"famigliapp/internal/storage"
)

// maxRangeDays ограничивает период проверки и выгрузки.
const maxRangeDays = 366

type Storage interface {
	ListEmployees(ctx context.Context) ([]storage.Employee, error)
	ListShifts(ctx context.Context, from, to storage.Date) ([]storage.Shift, error)
	ListEvents(ctx context.Context, from, to storage.Date) ([]storage.Event, error)
	ReplaceShifts(ctx context.Context, from, to storage.Date, shifts []storage.Shift) error
	GetShiftRules(ctx context.Context) (storage.ShiftRules, bool, error)
}

type Service struct {
	log       *slog.Logger
	storage   Storage
	rulesPath string
}

func NewService(log *slog.Logger, storage Storage, rulesPath string) *Service {
	return &Service{log: log, storage: storage, rulesPath: rulesPath}
}

// Roster: расписание за период вместе с результатом проверки.
type Roster struct {
	From       storage.Date        `json:"from"`
	To         storage.Date        `json:"to"`
	Employees  []storage.Employee  `json:"employees"`
	Shifts     []storage.Shift     `json:"shifts"`
	Violations []storage.Violation `json:"violations"`
}

// Rules возвращает правила из хранилища, а если их там нет, из YAML-файла.
func (s *Service) Rules(ctx context.Context) (storage.ShiftRules, error) {
	const op = "service.calendario.Rules"

	rules, ok, err := s.storage.GetShiftRules(ctx)
	if err != nil {
		return storage.ShiftRules{}, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		return rules, nil
	}

	rules, err = LoadRulesFile(s.rulesPath)
	if err != nil {
		return storage.ShiftRules{}, fmt.Errorf("%s: %w", op, err)
	}
	return rules, nil
}

func checkRange(from, to storage.Date) error {
	if !from.Valid() || !to.Valid() || to.Before(from) {
		return fmt.Errorf("range %q..%q: %w", from, to, storage.ErrInvalidInput)
	}
	if from.DaysUntil(to) >= maxRangeDays {
		return fmt.Errorf("range %s..%s longer than %d days: %w", from, to, maxRangeDays, storage.ErrInvalidInput)
	}
	return nil
}

// Roster загружает данные параллельно и проверяет расписание за [from, to].
func (s *Service) Roster(ctx context.Context, from, to storage.Date) (Roster, error) {
	const op = "service.calendario.Roster"

	if err := checkRange(from, to); err != nil {
		return Roster{}, fmt.Errorf("%s: %w", op, err)
	}

	var (
		rules     storage.ShiftRules
		employees []storage.Employee
		shifts    []storage.Shift
		events    []storage.Event
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rules, err = s.Rules(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		employees, err = s.storage.ListEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		shifts, err = s.storage.ListShifts(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("shifts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.storage.ListEvents(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("events: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Roster{}, fmt.Errorf("%s: %w", op, err)
	}

	return Roster{
		From:       from,
		To:         to,
		Employees:  employees,
		Shifts:     shifts,
		Violations: Validate(rules, employees, shifts, events, from, to),
	}, nil
}

func (s *Service) Validate(ctx context.Context, from, to storage.Date) ([]storage.Violation, error) {
	roster, err := s.Roster(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return roster.Violations, nil
}

// SaveShifts заменяет назначения периода и возвращает нарушения; нарушения сохранению не мешают.
func (s *Service) SaveShifts(ctx context.Context, upd storage.ShiftsUpdate) ([]storage.Violation, error) {
	const op = "service.calendario.SaveShifts"

	if err := checkRange(upd.From, upd.To); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.ReplaceShifts(ctx, upd.From, upd.To, upd.Shifts); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	violations, err := s.Validate(ctx, upd.From, upd.To)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(violations) > 0 {
		s.log.Info("shifts saved with violations",
			slog.String("from", string(upd.From)),
			slog.String("to", string(upd.To)),
			slog.Int("violations", len(violations)),
		)
	}
	return violations, nil
}
