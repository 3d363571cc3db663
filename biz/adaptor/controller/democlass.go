package controller

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// CreateDemoClass .
// @router /api/demoClass [POST]
func CreateDemoClass(ctx context.Context, c *app.RequestContext) {
	var req show.CreateDemoClassReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.DemoClassService.CreateDemoClass(ctx, &req)
	adaptor.PostProcessWithStatus(ctx, c, &req, resp, err, http.StatusCreated)
}

// GetDemoClass .
// @router /api/demoClass/:id [GET]
func GetDemoClass(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.DemoClassService.GetDemoClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListDemoClasses .
// @router /api/demoClass [GET]
func ListDemoClasses(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.DemoClassService.ListDemoClasses(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// ListAssignedDemoClasses .
// @router /api/demo-classes-assign [GET]
func ListAssignedDemoClasses(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.DemoClassService.ListAssignedDemoClasses(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// UpdateDemoClass .
// @router /api/demoClass [PUT]
func UpdateDemoClass(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateDemoClassReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.DemoClassService.UpdateDemoClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteDemoClass .
// @router /api/demoClass/:id [DELETE]
func DeleteDemoClass(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.DemoClassService.DeleteDemoClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
