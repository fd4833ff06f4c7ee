package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	TemplateEventReminder = "event_reminder"
	TemplateKouzaReminder = "kouza_reminder"
	TemplateQuestDue      = "quest_due"
	TemplatePollClosed    = "poll_closed"
)

var templates = mustParseTemplates(TemplateEventReminder, TemplateKouzaReminder, TemplateQuestDue, TemplatePollClosed)

// каждый шаблон определяет блоки "subject" и "body"
func mustParseTemplates(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(template.New(name).ParseFS(templateFS, "templates/"+name+".tmpl"))
	}
	return out
}

// Render заполняет тему и текст письма по шаблону name.
func Render(name string, data any) (Message, error) {
	const op = "mailer.Render"

	tmpl, ok := templates[name]
	if !ok {
		return Message{}, fmt.Errorf("%s: unknown template %q", op, name)
	}

	var subject, body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("%s: %s subject: %w", op, name, err)
	}
	if err := tmpl.ExecuteTemplate(&body, "body", data); err != nil {
		return Message{}, fmt.Errorf("%s: %s body: %w", op, name, err)
	}

	return Message{
		Subject: strings.TrimSpace(subject.String()),
		Text:    strings.TrimSpace(body.String()) + "\n",
	}, nil
}
