package controller

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// ListTransactions .
// @router /api/transaction [GET]
func ListTransactions(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.TransactionService.ListTransactions(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// GetDashboard .
// @router /api/admin-dashboard [GET]
func GetDashboard(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.DashboardService.GetDashboard(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// ListSubjects .
// @router /api/subjects [GET]
func ListSubjects(ctx context.Context, c *app.RequestContext) {
	var req show.ListSubjectsReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CatalogService.ListSubjects(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListOutbox 查看邮件投递记录，排查失败
// @router /api/outbox [GET]
func ListOutbox(ctx context.Context, c *app.RequestContext) {
	var req show.ListOutboxReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.NotificationService.ListOutbox(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
