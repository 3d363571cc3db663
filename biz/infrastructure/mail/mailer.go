package mail

import (
	"context"
	"fmt"

	"tuition-show/biz/infrastructure/config"
)

// Mail 一封待发送的纯文本邮件
type Mail struct {
	To      []string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m *Mail) error
}

// NewMailer 按 Mail.Provider 选择实现
func NewMailer(config *config.Config) (Mailer, error) {
	c := config.Mail
	switch c.Provider {
	case "gateway":
		return NewHTTPMailer(c), nil
	case "smtp":
		return NewSMTPMailer(c), nil
	case "log", "":
		return LogMailer{}, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", c.Provider)
	}
}
