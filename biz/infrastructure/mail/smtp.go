package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"tuition-show/biz/infrastructure/config"
)

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(c config.MailConfig) *SMTPMailer {
	var auth smtp.Auth
	if c.Username != "" {
		auth = smtp.PlainAuth("", c.Username, c.Password, c.SMTPHost)
	}
	return &SMTPMailer{
		addr: net.JoinHostPort(c.SMTPHost, strconv.Itoa(c.SMTPPort)),
		auth: auth,
		from: c.From,
	}
}

func (s *SMTPMailer) Send(ctx context.Context, m *Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := smtp.SendMail(s.addr, s.auth, s.from, m.To, buildMessage(s.from, m)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

func buildMessage(from string, m *Mail) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(m.To, ", ") + "\r\n")
	b.WriteString("Subject: " + m.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}
