package services

import (
	"fmt"
	"os"

	"gopkg.in/gomail.v2"
)

// EmailSender transmits one composed message. No retry; a failed record is
// naturally retried by the next batch run.
type EmailSender interface {
	Send(to, subject, body, attachmentPath string) error
}

var _ EmailSender = (*MailService)(nil)

type MailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailService(host string, port int, username, password, from string) *MailService {
	return &MailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *MailService) Send(to, subject, body, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	// Attach the resume only when it is actually on disk.
	if attachmentPath != "" {
		if _, err := os.Stat(attachmentPath); err == nil {
			m.Attach(attachmentPath)
		}
	}

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if s.port == 465 {
		d.SSL = true
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailure, err)
	}
	return nil
}
