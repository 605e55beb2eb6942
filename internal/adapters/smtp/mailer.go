package smtp

// Package smtp delivers transactional email over plain SMTP with optional
// STARTTLS. It implements ports.Mailer.

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/campushub/intranet-api/config"
	"github.com/campushub/intranet-api/internal/ports"
)

const defaultDialTimeout = 15 * time.Second

// Mailer sends mail through a single SMTP relay.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
}

// NewMailer creates a Mailer from mail configuration.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		fromName: cfg.FromName,
		useTLS:   cfg.UseTLS,
	}
}

// Send delivers one message. The context deadline, when present, bounds the
// dial; SMTP conversation timeouts are left to the server.
func (m *Mailer) Send(ctx context.Context, msg ports.Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail: recipient is required")
	}

	d := net.Dialer{Timeout: defaultDialTimeout}
	if deadline, ok := ctx.Deadline(); ok {
		if t := time.Until(deadline); t > 0 {
			d.Timeout = t
		}
	}

	address := fmt.Sprintf("%s:%d", m.host, m.port)
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("mail: dial: %w", err)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("mail: new client: %w", err)
	}
	defer c.Quit()

	if m.useTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if tlsErr := c.StartTLS(&tls.Config{ServerName: m.host}); tlsErr != nil {
				return fmt.Errorf("mail: starttls: %w", tlsErr)
			}
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if authErr := c.Auth(auth); authErr != nil {
			return fmt.Errorf("mail: auth: %w", authErr)
		}
	}

	if mailErr := c.Mail(m.from); mailErr != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", mailErr)
	}
	if rcptErr := c.Rcpt(strings.TrimSpace(msg.To)); rcptErr != nil {
		return fmt.Errorf("mail: RCPT TO: %w", rcptErr)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, writeErr := w.Write(m.buildMessage(msg)); writeErr != nil {
		w.Close()
		return fmt.Errorf("mail: write body: %w", writeErr)
	}
	if closeErr := w.Close(); closeErr != nil {
		return fmt.Errorf("mail: close data: %w", closeErr)
	}
	return nil
}

// buildMessage renders a plain-text RFC 5322 message.
func (m *Mailer) buildMessage(msg ports.Message) []byte {
	from := m.from
	if m.fromName != "" {
		from = fmt.Sprintf("%s <%s>", m.fromName, m.from)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return buf.Bytes()
}
