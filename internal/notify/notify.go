// Package notify sends email notifications for application events.
//
// Sends are asynchronous and best-effort: a failed or skipped notification
// is logged and never surfaces to the request that triggered it.
package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Config holds the SMTP settings. An empty Host disables sending.
type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// sender abstracts gomail's dialer so tests can capture messages.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer sends notification emails over SMTP.
type Mailer struct {
	config Config
	sender sender
}

// NewMailer creates a mailer from SMTP configuration.
func NewMailer(cfg Config) *Mailer {
	m := &Mailer{config: cfg}
	if cfg.Host != "" {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	}
	return m
}

// ApplicationSubmitted notifies a job's poster of a new application.
func (m *Mailer) ApplicationSubmitted(posterEmail, applicantName, position string) {
	subject := fmt.Sprintf("New application for %s", position)
	body := fmt.Sprintf("%s applied to your listing %q.", applicantName, position)
	m.send(posterEmail, subject, body)
}

// StatusChanged notifies an applicant that their application moved.
func (m *Mailer) StatusChanged(applicantEmail, position, status string) {
	subject := fmt.Sprintf("Application update: %s", position)
	body := fmt.Sprintf("Your application for %q is now %s.", position, status)
	m.send(applicantEmail, subject, body)
}

// send delivers asynchronously. Failures are logged and swallowed.
func (m *Mailer) send(to, subject, body string) {
	if m.sender == nil {
		log.Printf("[notify] SMTP not configured, skipping notification to %s", to)
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	go func() {
		if err := m.sender.DialAndSend(msg); err != nil {
			log.Printf("[notify] failed to send %q to %s: %v", subject, to, err)
		}
	}()
}
