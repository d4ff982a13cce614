package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sync"

	"go.uber.org/zap"

	"github.com/craftlink/artisan-registry-backend/config"
)

// Mailer sends plain-text mail over SMTP with STARTTLS.
type Mailer struct {
	host      string
	port      string
	username  string
	password  string
	fromName  string
	fromEmail string
	log       *zap.Logger
}

func NewMailer(cfg *config.Config, log *zap.Logger) *Mailer {
	fromEmail := cfg.SMTPFromEmail
	if fromEmail == "" {
		fromEmail = cfg.SMTPUsername
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Mailer{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromName:  cfg.SMTPFromName,
		fromEmail: fromEmail,
		log:       log,
	}
}

// Send delivers one message. When SMTP is not configured the message is
// logged and dropped so local environments keep working.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" || m.username == "" || m.password == "" {
		m.log.Warn("SMTP not configured, email not sent", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	// Dial plain, then upgrade with STARTTLS before authenticating.
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         m.host,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(m.fromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := m.fromEmail
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		m.log.Warn("SMTP QUIT failed", zap.Error(err))
	}
	return nil
}

// SendBulkAsync fans the same message out to every recipient in the
// background. Failures are logged per recipient, never surfaced.
func (m *Mailer) SendBulkAsync(recipients []string, subject, body string) {
	go func() {
		var wg sync.WaitGroup
		for _, email := range recipients {
			wg.Add(1)
			go func(to string) {
				defer wg.Done()
				if err := m.Send(to, subject, body); err != nil {
					m.log.Error("failed to send email", zap.String("to", to), zap.Error(err))
				}
			}(email)
		}
		wg.Wait()
	}()
}
