package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"construtora/internal/models"
)

type EmailChannel struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailChannel(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) *EmailChannel {
	return &EmailChannel{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *EmailChannel) Name() string { return "email" }

func (s *EmailChannel) Send(_ context.Context, to *models.User, n Notice) error {
	if to.Email == "" {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to.Email)
	m.SetHeader("Subject", n.Subject)
	m.SetBody("text/html", emailBody(to.Name, n))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send assignment email: %w", err)
	}
	return nil
}

func emailBody(name string, n Notice) string {
	var b strings.Builder
	b.WriteString("<p>Olá, " + html.EscapeString(name) + "!</p>")
	b.WriteString("<h3>" + html.EscapeString(n.Heading) + "</h3>")
	b.WriteString("<p><b>" + html.EscapeString(n.Title) + "</b></p><ul>")
	for _, f := range n.Fields {
		b.WriteString("<li>" + html.EscapeString(f.Label) + ": " + html.EscapeString(f.Value) + "</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
