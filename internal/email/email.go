// Package email sends transactional mail over SMTP. Failures are for the
// caller (the notify worker) to log; they never reach the request path.
package email

import (
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

const signature = "<br><br><p>Regards,<br>SuperMart Team</p>"

// SMTPSender sends mail through an authenticated STARTTLS SMTP server.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{host: host, port: port, username: username, password: password, from: from}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, "SuperMart Team")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody+signature)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}

// LogSender is the stand-in used when SMTP is not configured: it logs the
// mail instead of sending it, so flows can be exercised without credentials.
type LogSender struct {
	Logger *zap.Logger
}

func (s *LogSender) Send(to, subject, htmlBody string) error {
	s.Logger.Info("email (not sent, SMTP unconfigured)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", htmlBody),
	)
	return nil
}
