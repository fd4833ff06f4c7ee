package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"famigliapp/internal/storage"
)

type Runner interface {
	Run(ctx context.Context, now time.Time) (Summary, error)
}

// Ticker раз в interval проверяет, наступило ли время run_at, и запускает напоминания
// не чаще одного раза в день.
type Ticker struct {
	log      *slog.Logger
	runner   Runner
	interval time.Duration
	hour     int
	minute   int
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	lastRun storage.Date
}

func NewTicker(log *slog.Logger, runner Runner, interval time.Duration, hour, minute int) *Ticker {
	return &Ticker{
		log:      log,
		runner:   runner,
		interval: interval,
		hour:     hour,
		minute:   minute,
		now:      time.Now,
	}
}

func (t *Ticker) Start(ctx context.Context) {
	t.ctx, t.cancel = context.WithCancel(ctx)

	t.wg.Add(1)
	go t.run()

	t.log.Info("reminder ticker started",
		slog.Duration("interval", t.interval),
		slog.Int("hour", t.hour),
		slog.Int("minute", t.minute),
	)
}

// Stop дожидается завершения текущего запуска.
func (t *Ticker) Stop() {
	if t.cancel == nil {
		return
	}
	t.cancel()
	t.wg.Wait()
	t.log.Info("reminder ticker stopped")
}

func (t *Ticker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.ctx.Done():
			return
		case <-ticker.C:
			t.tick(t.ctx, t.now())
		}
	}
}

func (t *Ticker) due(now time.Time) bool {
	runAt := time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, now.Location())

	t.mu.Lock()
	defer t.mu.Unlock()

	return !now.Before(runAt) && t.lastRun != storage.DateOf(now)
}

// tick запускает напоминания, если они сегодня ещё не выполнялись.
// День отмечается выполненным и при ошибке, чтобы не рассылать повторно.
func (t *Ticker) tick(ctx context.Context, now time.Time) {
	const op = "service.reminder.Ticker.tick"

	if !t.due(now) {
		return
	}

	t.mu.Lock()
	t.lastRun = storage.DateOf(now)
	t.mu.Unlock()

	summary, err := t.runner.Run(ctx, now)
	if err != nil {
		t.log.Error("reminders finished with errors", slog.String("op", op), slog.String("error", err.Error()))
		return
	}
	t.log.Debug("reminders sent", slog.Any("summary", summary))
}
