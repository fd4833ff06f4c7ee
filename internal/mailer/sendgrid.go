package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type Sendgrid struct {
	log        *slog.Logger
	key        string
	host       string
	from       *sgmail.Email
	subjPrefix string
}

var _ Sender = (*Sendgrid)(nil)

func NewSendgrid(log *slog.Logger, key, appName string, from mail.Address) *Sendgrid {
	return &Sendgrid{
		log:        log,
		key:        key,
		host:       sendgridHost,
		from:       sgmail.NewEmail(from.Name, from.Address),
		subjPrefix: subjectPrefix(appName),
	}
}

// Send отправляет письма по одному; ошибка одного письма не останавливает остальные.
func (s *Sendgrid) Send(ctx context.Context, msgs ...Message) error {
	const op = "mailer.Sendgrid.Send"

	var errs []error
	for _, msg := range msgs {
		if !msg.HasRecipients() || !msg.HasContent() {
			continue
		}
		if err := s.send(ctx, msg); err != nil {
			s.log.Error("failed to send email", slog.String("op", op), slog.String("to", joinAddresses(msg.To)), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %s: %w", op, msg, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Sendgrid) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Address))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)

	m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

func (s *Sendgrid) send(ctx context.Context, msg Message) error {
	req := sendgrid.GetRequest(s.key, sendgridEndpoint, s.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.prepare(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
