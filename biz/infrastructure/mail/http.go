package mail

import (
	"context"
	"fmt"

	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/util"
)

// HTTPMailer 通过 HTTP 邮件网关投递
type HTTPMailer struct {
	client *util.HttpClient
	url    string
	token  string
	from   string
}

func NewHTTPMailer(c config.MailConfig) *HTTPMailer {
	return &HTTPMailer{
		client: util.NewHttpClient(),
		url:    c.GatewayURL,
		token:  c.GatewayToken,
		from:   c.From,
	}
}

func (h *HTTPMailer) Send(ctx context.Context, m *Mail) error {
	header := map[string]string{
		"Content-Type": consts.ContentTypeJson,
		"Charset":      consts.CharSetUTF8,
	}
	if h.token != "" {
		header[consts.Authorization] = consts.BearerPrefix + h.token
	}
	body := map[string]any{
		"from":    h.from,
		"to":      m.To,
		"subject": m.Subject,
		"text":    m.Body,
	}
	if _, err := h.client.SendRequest(ctx, consts.Post, h.url, header, body); err != nil {
		return fmt.Errorf("mail gateway: %w", err)
	}
	return nil
}
