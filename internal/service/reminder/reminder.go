package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"famigliapp/internal/mailer"
	"famigliapp/internal/storage"
)

const (
	JobEvents = "events"
	JobKouza  = "kouza"
	JobQuests = "quests"
	JobPolls  = "polls"
)

// maxEventNotifyDays: верхняя граница notify_days_before у события.
const maxEventNotifyDays = 60

type Storage interface {
	ListUsers(ctx context.Context) ([]storage.User, error)
	ListEvents(ctx context.Context, from, to storage.Date) ([]storage.Event, error)
	ListKouza(ctx context.Context) ([]storage.Kouza, error)
	KouzaFeedbackAuthors(ctx context.Context) (map[string]map[string]bool, error)
	ListQuests(ctx context.Context, status string) ([]storage.Quest, error)
	CloseExpiredPolls(ctx context.Context, today storage.Date) ([]storage.Poll, error)
}

type Options struct {
	EventDaysBefore int
	KouzaDaysBefore int
	QuestDaysBefore int
}

// Summary: сколько писем отправила каждая задача (для polls: сколько опросов закрыто).
type Summary map[string]int

type Service struct {
	log     *slog.Logger
	storage Storage
	mailer  mailer.Sender
	opts    Options
}

func NewService(log *slog.Logger, storage Storage, sender mailer.Sender, opts Options) *Service {
	return &Service{log: log, storage: storage, mailer: sender, opts: opts}
}

type job func(ctx context.Context, today storage.Date, users map[string]storage.User) (int, error)

// Run выполняет все задачи за день now. Задачи идут параллельно; ошибка одной не останавливает остальные.
func (s *Service) Run(ctx context.Context, now time.Time) (Summary, error) {
	const op = "service.reminder.Run"

	today := storage.DateOf(now)

	list, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: users: %w", op, err)
	}
	users := make(map[string]storage.User, len(list))
	for _, u := range list {
		users[u.Username] = u
	}

	jobs := map[string]job{
		JobEvents: s.remindEvents,
		JobKouza:  s.remindKouza,
		JobQuests: s.remindQuests,
		JobPolls:  s.closePolls,
	}

	var (
		mu      sync.Mutex
		summary = make(Summary, len(jobs))
		errs    []error
		g       errgroup.Group
	)
	for name, run := range jobs {
		g.Go(func() error {
			n, err := run(ctx, today, users)

			mu.Lock()
			defer mu.Unlock()
			summary[name] = n
			if err != nil {
				s.log.Error("reminder job failed", slog.String("op", op), slog.String("job", name), slog.String("error", err.Error()))
				errs = append(errs, fmt.Errorf("%s: %s: %w", op, name, err))
			}
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info("reminders done",
		slog.String("date", string(today)),
		slog.Int(JobEvents, summary[JobEvents]),
		slog.Int(JobKouza, summary[JobKouza]),
		slog.Int(JobQuests, summary[JobQuests]),
		slog.Int(JobPolls, summary[JobPolls]),
	)

	return summary, errors.Join(errs...)
}

func address(u storage.User) (mail.Address, bool) {
	if u.Email == "" {
		return mail.Address{}, false
	}
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return mail.Address{Name: name, Address: u.Email}, true
}

// personal рендерит шаблон для одного пользователя; пользователи без email пропускаются.
func personal(tmpl string, u storage.User, data func(name string) any) (mailer.Message, bool, error) {
	to, ok := address(u)
	if !ok {
		return mailer.Message{}, false, nil
	}
	msg, err := mailer.Render(tmpl, data(to.Name))
	if err != nil {
		return mailer.Message{}, false, err
	}
	msg.To = []mail.Address{to}
	return msg, true, nil
}

func (s *Service) send(ctx context.Context, msgs []mailer.Message) (int, error) {
	if len(msgs) == 0 {
		return 0, nil
	}
	if err := s.mailer.Send(ctx, msgs...); err != nil {
		return 0, err
	}
	return len(msgs), nil
}

type eventData struct {
	Name     string
	DaysLeft int
	Event    storage.Event
}

// remindEvents: событие через notify_days_before дней (по умолчанию event_days_before).
// Пишем участникам, а если участники не указаны, то всем.
func (s *Service) remindEvents(ctx context.Context, today storage.Date, users map[string]storage.User) (int, error) {
	events, err := s.storage.ListEvents(ctx, today, today.AddDays(maxEventNotifyDays))
	if err != nil {
		return 0, err
	}

	var msgs []mailer.Message
	for _, ev := range events {
		days := s.opts.EventDaysBefore
		if ev.NotifyDaysBefore != nil {
			days = *ev.NotifyDaysBefore
		}
		if today.AddDays(days) != ev.Date {
			continue
		}

		recipients := ev.Participants
		if len(recipients) == 0 {
			recipients = make([]string, 0, len(users))
			for name := range users {
				recipients = append(recipients, name)
			}
		}

		for _, username := range recipients {
			u, ok := users[username]
			if !ok {
				continue
			}
			msg, ok, err := personal(mailer.TemplateEventReminder, u, func(name string) any {
				return eventData{Name: name, DaysLeft: days, Event: ev}
			})
			if err != nil {
				return 0, err
			}
			if ok {
				msgs = append(msgs, msg)
			}
		}
	}
	return s.send(ctx, msgs)
}

type kouzaData struct {
	Name  string
	Kouza storage.Kouza
}

// remindKouza: до конца окна отзывов осталось kouza_remind_days_before дней.
func (s *Service) remindKouza(ctx context.Context, today storage.Date, users map[string]storage.User) (int, error) {
	items, err := s.storage.ListKouza(ctx)
	if err != nil {
		return 0, err
	}
	authors, err := s.storage.KouzaFeedbackAuthors(ctx)
	if err != nil {
		return 0, err
	}

	var msgs []mailer.Message
	for _, k := range items {
		if !k.Open(today) || today.AddDays(s.opts.KouzaDaysBefore) != k.Deadline() {
			continue
		}
		for username, u := range users {
			if authors[k.ID][username] {
				continue
			}
			msg, ok, err := personal(mailer.TemplateKouzaReminder, u, func(name string) any {
				return kouzaData{Name: name, Kouza: k}
			})
			if err != nil {
				return 0, err
			}
			if ok {
				msgs = append(msgs, msg)
			}
		}
	}
	return s.send(ctx, msgs)
}

type questData struct {
	Name    string
	Quest   storage.Quest
	Overdue bool
}

// remindQuests: принятые квесты со сроком через quest_remind_days_before дней или уже просроченные.
func (s *Service) remindQuests(ctx context.Context, today storage.Date, users map[string]storage.User) (int, error) {
	quests, err := s.storage.ListQuests(ctx, storage.QuestAccepted)
	if err != nil {
		return 0, err
	}

	var msgs []mailer.Message
	for _, q := range quests {
		if q.DueOn == nil {
			continue
		}
		overdue := q.DueOn.Before(today)
		if !overdue && today.AddDays(s.opts.QuestDaysBefore) != *q.DueOn {
			continue
		}
		u, ok := users[q.Assignee]
		if !ok {
			continue
		}
		msg, ok, err := personal(mailer.TemplateQuestDue, u, func(name string) any {
			return questData{Name: name, Quest: q, Overdue: overdue}
		})
		if err != nil {
			return 0, err
		}
		if ok {
			msgs = append(msgs, msg)
		}
	}
	return s.send(ctx, msgs)
}

type pollResult struct {
	Option string
	Votes  int
}

type pollData struct {
	Name    string
	Poll    storage.Poll
	Results []pollResult
}

// closePolls закрывает просроченные опросы и сообщает авторам результаты.
func (s *Service) closePolls(ctx context.Context, today storage.Date, users map[string]storage.User) (int, error) {
	closed, err := s.storage.CloseExpiredPolls(ctx, today)
	if err != nil {
		return 0, err
	}

	var msgs []mailer.Message
	for _, p := range closed {
		u, ok := users[p.Author]
		if !ok {
			continue
		}
		counts := p.Results()
		results := make([]pollResult, 0, len(p.Options))
		for i, o := range p.Options {
			results = append(results, pollResult{Option: o, Votes: counts[i]})
		}
		msg, ok, err := personal(mailer.TemplatePollClosed, u, func(name string) any {
			return pollData{Name: name, Poll: p, Results: results}
		})
		if err != nil {
			return 0, err
		}
		if ok {
			msgs = append(msgs, msg)
		}
	}

	if _, err := s.send(ctx, msgs); err != nil {
		return len(closed), err
	}
	return len(closed), nil
}
