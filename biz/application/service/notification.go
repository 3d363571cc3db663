package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/gopkg/util/gopool"
	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/mail"
	"tuition-show/biz/infrastructure/metrics"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/outbox"
	"tuition-show/biz/infrastructure/util/log"
	"tuition-show/biz/infrastructure/util/page"
)

type INotificationService interface {
	// Deliver 先落库再同步投递，投递结果写回记录；返回投递错误
	Deliver(ctx context.Context, kind, refID string, m *mail.Mail) error
	NotifyDemoCreated(ctx context.Context, d *democlass.DemoClass, email string)
	NotifyDemoStatus(ctx context.Context, d *democlass.DemoClass, email string)
	SendOtp(ctx context.Context, email, code string) error
	RelayOnce(ctx context.Context) (int, error)
	StartRelay(ctx context.Context)
	ListOutbox(ctx context.Context, req *show.ListOutboxReq) ([]*show.OutboxMessage, error)
}

type NotificationService struct {
	Config       *config.Config
	OutboxMapper outbox.IMongoMapper
	Mailer       mail.Mailer
	Metrics      *metrics.Metrics
}

var NotificationServiceSet = wire.NewSet(
	wire.Struct(new(NotificationService), "*"),
	wire.Bind(new(INotificationService), new(*NotificationService)),
)

func (s *NotificationService) Deliver(ctx context.Context, kind, refID string, m *mail.Mail) error {
	record := &outbox.Message{
		Kind:    kind,
		To:      m.To,
		Subject: m.Subject,
		Body:    m.Body,
		Status:  outbox.StatusSending,
		RefID:   refID,
	}
	if err := s.OutboxMapper.Insert(ctx, record); err != nil {
		log.CtxError(ctx, "outbox insert failed, kind=%s, ref=%s, err=%v", kind, refID, err)
		return err
	}
	return s.send(ctx, record)
}

func (s *NotificationService) send(ctx context.Context, record *outbox.Message) error {
	sendErr := s.Mailer.Send(ctx, &mail.Mail{To: record.To, Subject: record.Subject, Body: record.Body})
	s.Metrics.ObserveDelivery(record.Kind, sendErr)

	var markErr error
	if sendErr != nil {
		log.CtxError(ctx, "mail delivery failed, outbox=%s, kind=%s, err=%v", record.ID.Hex(), record.Kind, sendErr)
		markErr = s.OutboxMapper.MarkFailed(ctx, record.ID, sendErr.Error())
	} else {
		markErr = s.OutboxMapper.MarkSent(ctx, record.ID)
	}
	if markErr != nil {
		log.CtxError(ctx, "outbox mark failed, outbox=%s, err=%v", record.ID.Hex(), markErr)
	}
	return sendErr
}

// NotifyDemoCreated 给家长的确认邮件与给运营的通知，失败只记录不回滚
func (s *NotificationService) NotifyDemoCreated(ctx context.Context, d *democlass.DemoClass, email string) {
	date := d.BookingDateAndTime.Format("Mon Jan 02 2006")
	confirmation := &mail.Mail{
		To:      []string{email},
		Subject: "Demo Class Confirmed!",
		Body: fmt.Sprintf("Hi %s,\n\nYour demo class has been successfully booked.\nSubject: %s\nDate: %s\n\n"+
			"Our team will contact you within 24 hours.\n\nThe Tuition-ed Team",
			d.StudentName, d.Subject, date),
	}
	_ = s.Deliver(ctx, outbox.KindDemoConfirmation, d.ID.Hex(), confirmation)

	notice := &mail.Mail{
		To:      s.Config.Mail.OperatorAddresses,
		Subject: "New Demo Class Request!",
		Body: strings.Join([]string{
			"A new demo class has been booked.",
			"Student Name: " + d.StudentName,
			"Father's Name: " + d.FatherName,
			"Email: " + email,
			"Grade: " + d.Grade,
			"Subject: " + d.Subject,
			"Topic: " + orNA(d.Topic),
			"City: " + d.City,
			"Country: " + d.Country,
			"Date: " + date,
			"Time Zone: " + orNA(d.TimeZone),
		}, "\n"),
	}
	_ = s.Deliver(ctx, outbox.KindDemoOperatorNotice, d.ID.Hex(), notice)
}

func (s *NotificationService) NotifyDemoStatus(ctx context.Context, d *democlass.DemoClass, email string) {
	if email == "" {
		log.CtxInfo(ctx, "skip status mail, booking=%s has no student email", d.ID.Hex())
		return
	}
	body := fmt.Sprintf("Hi %s,\n\nYour demo class for %s is now %s.\nDate: %s\n",
		d.StudentName, d.Subject, d.Status, d.BookingDateAndTime.Format(time.RFC1123))
	if d.JoinLink != "" {
		body += "Join link: " + d.JoinLink + "\n"
	}
	body += "\nThe Tuition-ed Team"
	_ = s.Deliver(ctx, outbox.KindDemoStatus, d.ID.Hex(), &mail.Mail{
		To:      []string{email},
		Subject: "Demo Class " + strings.ToUpper(d.Status[:1]) + d.Status[1:],
		Body:    body,
	})
}

// SendOtp 新验证码发出前作废同一邮箱尚未送达的旧验证码邮件
func (s *NotificationService) SendOtp(ctx context.Context, email, code string) error {
	if n, err := s.OutboxMapper.Expire(ctx, outbox.KindOtp, email, time.Now()); err != nil {
		log.CtxError(ctx, "expire stale otp mail failed, email=%s, err=%v", email, err)
	} else if n > 0 {
		log.CtxInfo(ctx, "expired %d stale otp mail(s) for %s", n, email)
	}
	minutes := s.Config.Otp.Expire / 60
	return s.Deliver(ctx, outbox.KindOtp, email, &mail.Mail{
		To:      []string{email},
		Subject: "Your verification code",
		Body:    fmt.Sprintf("Your one-time code is %s. It expires in %d minutes.", code, minutes),
	})
}

// RelayOnce 作废过期的验证码邮件后逐条认领重投，返回本轮成功数。
// 投递中的记录在租约期内不会被认领
func (s *NotificationService) RelayOnce(ctx context.Context) (int, error) {
	now := time.Now()
	otpTTL := time.Duration(s.Config.Otp.Expire) * time.Second
	expired, err := s.OutboxMapper.Expire(ctx, outbox.KindOtp, "", now.Add(-otpTTL))
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.CtxInfo(ctx, "outbox relay: %d otp mail(s) expired", expired)
	}

	staleBefore := now.Add(-time.Duration(s.Config.Outbox.Lease) * time.Second)
	claimed := make([]primitive.ObjectID, 0, s.Config.Outbox.BatchSize)
	sent := 0
	for int64(len(claimed)) < s.Config.Outbox.BatchSize && ctx.Err() == nil {
		r, err := s.OutboxMapper.Claim(ctx, s.Config.Outbox.MaxAttempts, staleBefore, claimed)
		if errors.Is(err, consts.ErrNotFound) {
			break
		}
		if err != nil {
			return sent, err
		}
		claimed = append(claimed, r.ID)
		if s.send(ctx, r) == nil {
			sent++
		}
	}
	if len(claimed) > 0 {
		log.CtxInfo(ctx, "outbox relay: %d/%d delivered", sent, len(claimed))
	}
	return sent, nil
}

// StartRelay 后台定时重投，ctx 取消后退出
func (s *NotificationService) StartRelay(ctx context.Context) {
	interval := time.Duration(s.Config.Outbox.RelayInterval) * time.Second
	gopool.CtxGo(ctx, func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info("outbox relay stopped")
				return
			case <-ticker.C:
				if _, err := s.RelayOnce(ctx); err != nil {
					log.Error("outbox relay failed: %v", err)
				}
			}
		}
	})
}

func (s *NotificationService) ListOutbox(ctx context.Context, req *show.ListOutboxReq) ([]*show.OutboxMessage, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	skip, limit := page.ParsePageOpt(page.FromQuery(req.Page, req.Limit))
	records, err := s.OutboxMapper.FindByStatus(ctx, req.Status, skip, limit)
	if err != nil {
		return nil, err
	}
	return lo.Map(records, func(r *outbox.Message, _ int) *show.OutboxMessage {
		res := &show.OutboxMessage{Id: r.ID.Hex(), RefId: r.RefID}
		copyFields(res, r)
		return res
	}), nil
}
