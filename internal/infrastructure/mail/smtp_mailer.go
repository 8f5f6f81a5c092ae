package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/nursery/backend/internal/domain/messaging"
	"github.com/nursery/backend/internal/infrastructure/config"
)

// SMTPMailer delivers emails through an SMTP relay
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string

	// send is swappable for testing
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer creates a mailer from the mail configuration
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
		send: smtp.SendMail,
	}
}

// Send delivers a single email
func (m *SMTPMailer) Send(ctx context.Context, email messaging.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(m.from, email)
	if err := m.send(m.addr, m.auth, m.from, []string{email.To}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}
	return nil
}

// buildMessage assembles RFC 5322 headers and body
// With a text body present the message is multipart/alternative,
// otherwise plain HTML
func buildMessage(from string, email messaging.Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")

	if email.TextBody == "" {
		b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		b.WriteString("\r\n")
		b.WriteString(email.HTMLBody)
		return []byte(b.String())
	}

	var parts bytes.Buffer
	writer := multipart.NewWriter(&parts)
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", writer.Boundary())

	text, _ := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	_, _ = text.Write([]byte(email.TextBody))

	html, _ := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	_, _ = html.Write([]byte(email.HTMLBody))

	_ = writer.Close()
	b.Write(parts.Bytes())
	return []byte(b.String())
}

// Ensure SMTPMailer implements Mailer
var _ messaging.Mailer = (*SMTPMailer)(nil)
