package service

import (
	"context"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/mail"
	"tuition-show/biz/infrastructure/repository/outbox"
)

func TestRelayRetriesFailedMail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mailer.setFail(true)

	err := e.notification.Deliver(ctx, outbox.KindOtp, "ref", &mail.Mail{To: []string{"ali@tuition.test"}, Subject: "code"})
	assert.NotNil(t, err)
	failed := e.outbox.byStatus(outbox.StatusFailed)
	assert.DeepEqual(t, 1, len(failed))
	assert.DeepEqual(t, errMailDown.Error(), failed[0].LastError)

	n, err := e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, n)

	e.mailer.setFail(false)
	n, err = e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, n)
	sent := e.outbox.byStatus(outbox.StatusSent)
	assert.DeepEqual(t, 1, len(sent))
	assert.DeepEqual(t, int64(3), sent[0].Attempts)

	n, err = e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, n)

	m := e.notification.Metrics.OutboxDeliveries
	assert.DeepEqual(t, float64(2), testutil.ToFloat64(m.WithLabelValues(outbox.KindOtp, "failed")))
	assert.DeepEqual(t, float64(1), testutil.ToFloat64(m.WithLabelValues(outbox.KindOtp, "sent")))
}

func TestRelayStopsAtMaxAttempts(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mailer.setFail(true)

	_ = e.notification.Deliver(ctx, outbox.KindOtp, "ref", &mail.Mail{To: []string{"ali@tuition.test"}})
	for i := 0; i < 5; i++ {
		_, _ = e.notification.RelayOnce(ctx)
	}
	failed := e.outbox.byStatus(outbox.StatusFailed)
	assert.DeepEqual(t, int64(e.config.Outbox.MaxAttempts), failed[0].Attempts)
}

func TestListOutbox(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_ = e.notification.Deliver(ctx, outbox.KindOtp, "a", &mail.Mail{To: []string{"a@tuition.test"}})
	e.mailer.setFail(true)
	_ = e.notification.Deliver(ctx, outbox.KindOtp, "b", &mail.Mail{To: []string{"b@tuition.test"}})

	list, err := e.notification.ListOutbox(asUser(e.admin), &show.ListOutboxReq{Status: outbox.StatusFailed})
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, len(list))
	assert.DeepEqual(t, "b", list[0].RefId)
	assert.DeepEqual(t, []string{"b@tuition.test"}, list[0].To)

	student := e.users.add(consts.RoleStudent, "Ali", "ali@tuition.test")
	_, err = e.notification.ListOutbox(asUser(student), &show.ListOutboxReq{})
	assert.DeepEqual(t, consts.ErrAdminOnly, err)
}

func TestRelaySkipsInFlightMail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	// 同步投递尚未返回的记录
	inFlight := &outbox.Message{Kind: outbox.KindDemoStatus, To: []string{"ali@tuition.test"}, Status: outbox.StatusSending, RefID: "d1"}
	assert.Nil(t, e.outbox.Insert(ctx, inFlight))

	n, err := e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, n)
	assert.DeepEqual(t, 0, len(e.mailer.sent))
	assert.DeepEqual(t, 1, len(e.outbox.byStatus(outbox.StatusSending)))

	// 租约过期视为投递方已崩溃，记录重新可认领
	e.outbox.backdate(inFlight.ID, 10*time.Minute)
	n, err = e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, n)
	assert.DeepEqual(t, 1, len(e.mailer.sent))
	assert.DeepEqual(t, 1, len(e.outbox.byStatus(outbox.StatusSent)))
}

func TestRelayExpiresStaleOtp(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.mailer.setFail(true)

	assert.NotNil(t, e.notification.SendOtp(ctx, "ali@tuition.test", "123456"))
	assert.NotNil(t, e.notification.Deliver(ctx, outbox.KindDemoStatus, "d1", &mail.Mail{To: []string{"ali@tuition.test"}}))
	for _, r := range e.outbox.byStatus(outbox.StatusFailed) {
		e.outbox.backdate(r.ID, time.Duration(e.config.Otp.Expire+1)*time.Second)
	}

	e.mailer.setFail(false)
	n, err := e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, n)
	assert.DeepEqual(t, 1, len(e.mailer.sent))
	assert.DeepEqual(t, outbox.KindDemoStatus, e.outbox.byStatus(outbox.StatusSent)[0].Kind)
	expired := e.outbox.byStatus(outbox.StatusExpired)
	assert.DeepEqual(t, 1, len(expired))
	assert.DeepEqual(t, outbox.KindOtp, expired[0].Kind)
}

func TestRelayHonoursBatchSize(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.config.Outbox.BatchSize = 2
	e.mailer.setFail(true)
	for _, ref := range []string{"a", "b", "c"} {
		_ = e.notification.Deliver(ctx, outbox.KindDemoStatus, ref, &mail.Mail{To: []string{ref + "@tuition.test"}})
	}

	e.mailer.setFail(false)
	n, err := e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 2, n)
	n, err = e.notification.RelayOnce(ctx)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, n)
	assert.DeepEqual(t, 3, len(e.outbox.byStatus(outbox.StatusSent)))
}
