package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
)

// Console пишет письма в лог и запоминает их (для тестов и локальной разработки).
type Console struct {
	log        *slog.Logger
	from       mail.Address
	subjPrefix string

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*Console)(nil)

func NewConsole(log *slog.Logger, appName string, from mail.Address) *Console {
	return &Console{
		log:        log,
		from:       from,
		subjPrefix: subjectPrefix(appName),
	}
}

func (c *Console) Send(ctx context.Context, msgs ...Message) error {
	for _, msg := range msgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !msg.HasRecipients() || !msg.HasContent() {
			continue
		}

		c.log.Info("email",
			slog.String("from", c.from.String()),
			slog.String("to", joinAddresses(msg.To)),
			slog.String("subject", c.subjPrefix+msg.Subject),
			slog.String("body", msg.Text),
		)

		c.mu.Lock()
		c.sent = append(c.sent, msg)
		c.mu.Unlock()
	}
	return nil
}

// Sent возвращает копию отправленных писем.
func (c *Console) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.sent))
	copy(out, c.sent)
	return out
}

func joinAddresses(addrs []mail.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ", ")
}

func (m Message) String() string {
	return fmt.Sprintf("to=%s subject=%q", joinAddresses(m.To), m.Subject)
}
