package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"famigliapp/internal/config"
	"famigliapp/internal/mailer"
	"famigliapp/internal/middleware/auth"
	"famigliapp/internal/service/calendario"
	"famigliapp/internal/service/dashboard"
	"famigliapp/internal/service/reminder"
	"famigliapp/internal/service/report"
	"famigliapp/internal/storage"
	"famigliapp/internal/storage/jsonfile"
	"famigliapp/internal/storage/mysql"
	"famigliapp/internal/storage/repo"
)

// App: собранные зависимости сервера и CLI.
type App struct {
	Config *config.Config
	Log    *slog.Logger

	Storage    *repo.Storage
	Mailer     mailer.Sender
	Tokens     *auth.Tokens
	Calendario *calendario.Service
	Reminder   *reminder.Service
	Dashboard  *dashboard.Service
	Report     *report.Service

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	const op = "app.New"

	a := &App{Config: cfg, Log: log}

	backend, err := a.openBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Storage = repo.New(backend, repo.WithKouzaDeadlineDays(cfg.Kouza.DefaultDeadlineDays))

	a.Mailer, err = mailer.New(cfg.Mail, log)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a.Tokens = auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	a.Calendario = calendario.NewService(log, a.Storage, cfg.Calendario.RulesPath)
	a.Reminder = reminder.NewService(log, a.Storage, a.Mailer, reminder.Options{
		EventDaysBefore: cfg.Scheduler.EventDaysBefore,
		KouzaDaysBefore: cfg.Scheduler.KouzaRemindDaysBefore,
		QuestDaysBefore: cfg.Scheduler.QuestRemindDaysBefore,
	})
	a.Dashboard = dashboard.NewService(a.Storage)
	a.Report = report.NewService(a.Storage, a.Calendario)

	return a, nil
}

func (a *App) openBackend(ctx context.Context, cfg config.Storage) (storage.Backend, error) {
	switch cfg.Backend {
	case "mysql":
		db, err := mysql.New(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		if err := db.Migrate(ctx); err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Log.Info("storage opened", slog.String("backend", "mysql"), slog.String("db", cfg.DBName))
		return db, nil
	default:
		fs, err := jsonfile.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.Log.Info("storage opened", slog.String("backend", "json"), slog.String("dir", cfg.DataDir))
		return fs, nil
	}
}

// Ticker: ежедневный запуск напоминаний по scheduler.run_at.
func (a *App) Ticker() (*reminder.Ticker, error) {
	hour, minute, err := a.Config.Scheduler.RunAtClock()
	if err != nil {
		return nil, err
	}
	return reminder.NewTicker(a.Log, a.Reminder, a.Config.Scheduler.CheckInterval, hour, minute), nil
}

func (a *App) AuthAdmin() auth.Admin {
	return auth.Admin{Login: a.Config.Auth.AdminLogin, Password: a.Config.Auth.AdminPass}
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
