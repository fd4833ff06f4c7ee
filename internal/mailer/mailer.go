package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"famigliapp/internal/config"
)

// Message: одно письмо; Subject без префикса приложения.
type Message struct {
	To      []mail.Address
	Subject string
	Text    string
	HTML    string
}

func (m Message) HasRecipients() bool {
	return len(m.To) > 0
}

func (m Message) HasContent() bool {
	return strings.TrimSpace(m.Text) != "" || strings.TrimSpace(m.HTML) != ""
}

type Sender interface {
	Send(ctx context.Context, msgs ...Message) error
}

func subjectPrefix(appName string) string {
	return "[" + appName + "] "
}

// New выбирает backend по mail.backend.
func New(cfg config.Mail, log *slog.Logger) (Sender, error) {
	switch cfg.Backend {
	case "", "console":
		return NewConsole(log, cfg.AppName, mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}), nil
	case "sendgrid":
		if cfg.SendgridAPIKey == "" {
			return nil, fmt.Errorf("mailer: sendgrid backend requires an API key")
		}
		return NewSendgrid(log, cfg.SendgridAPIKey, cfg.AppName, mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}), nil
	default:
		return nil, fmt.Errorf("mailer: unknown backend %q", cfg.Backend)
	}
}
