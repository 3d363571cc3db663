package mail

import (
	"context"
	"strings"

	"tuition-show/biz/infrastructure/util/log"
)

// LogMailer 本地开发用，只打日志
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, m *Mail) error {
	log.CtxInfo(ctx, "[mail] to=%s subject=%q body=%q", strings.Join(m.To, ","), m.Subject, m.Body)
	return nil
}
