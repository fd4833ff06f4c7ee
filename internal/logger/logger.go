package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// DualHandler пишет всё в основной вывод, а записи уровня Error и выше дублирует в файл ошибок.
type DualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func NewDualHandler(core, errs slog.Handler) *DualHandler {
	return &DualHandler{coreHandler: core, errorHandler: errs}
}

func (h *DualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *DualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.coreHandler.Enabled(ctx, r.Level) {
		err = h.coreHandler.Handle(ctx, r)
		if err != nil {
			return err
		}
	}

	// ошибку записи в файл не пробрасываем: основной вывод уже получил запись
	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return err
}

func (h *DualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &DualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *DualHandler) WithGroup(name string) slog.Handler {
	return &DualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

// CoreHandler: JSON для dev, текст для остальных окружений; в prod уровень Info.
func CoreHandler(env string, w io.Writer) slog.Handler {
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if env == EnvDev {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Setup собирает логгер сервера: stdout плюс errorsPath для ошибок.
// Если файл открыть не удалось, логгер работает только в stdout.
func Setup(env, errorsPath string) *slog.Logger {
	core := CoreHandler(env, os.Stdout)

	errorFile, err := os.OpenFile(errorsPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		log := slog.New(core)
		log.Warn("cannot open error log file", slog.String("path", errorsPath), slog.String("error", err.Error()))
		return log
	}

	errorHandler := slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError})

	return slog.New(NewDualHandler(core, errorHandler))
}

// Discard: логгер для тестов.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
