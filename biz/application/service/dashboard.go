package service

import (
	"context"

	"github.com/google/wire"
	"golang.org/x/sync/errgroup"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/transaction"
	"tuition-show/biz/infrastructure/repository/user"
)

type IDashboardService interface {
	GetDashboard(ctx context.Context) (*show.DashboardResp, error)
}

type DashboardService struct {
	UserMapper        user.IMongoMapper
	DemoClassMapper   democlass.IMongoMapper
	TransactionMapper transaction.IMongoMapper
}

var DashboardServiceSet = wire.NewSet(
	wire.Struct(new(DashboardService), "*"),
	wire.Bind(new(IDashboardService), new(*DashboardService)),
)

// GetDashboard 各项统计并发查询
func (s *DashboardService) GetDashboard(ctx context.Context) (*show.DashboardResp, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	stats := &show.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalStudents, err = s.UserMapper.Count(gctx, &user.Query{Role: consts.RoleStudent})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalTeachers, err = s.UserMapper.Count(gctx, &user.Query{Role: consts.RoleTeacher})
		return err
	})
	g.Go(func() (err error) {
		stats.PendingTeachers, err = s.UserMapper.Count(gctx, &user.Query{
			Role:          consts.RoleTeacher,
			TeacherStatus: string(lifecycle.ApprovalPending),
		})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalDemoClasses, err = s.DemoClassMapper.Count(gctx, &democlass.Query{})
		return err
	})
	g.Go(func() (err error) {
		stats.DemoClassesByStatus, err = s.DemoClassMapper.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEarnings, err = s.TransactionMapper.SumAmount(gctx, consts.PaymentCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &show.DashboardResp{Data: stats}, nil
}
