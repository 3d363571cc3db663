package controller

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// ListTeachers .
// @router /api/teachers [GET]
func ListTeachers(ctx context.Context, c *app.RequestContext) {
	var req show.ListTeachersReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.TeacherService.ListTeachers(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListApprovedTeachers .
// @router /api/approve-teacher [GET]
func ListApprovedTeachers(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.TeacherService.ListApprovedTeachers(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// UpdateTeacherStatus .
// @router /api/teachers [PUT]
func UpdateTeacherStatus(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateTeacherStatusReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.TeacherService.UpdateTeacherStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetTeacher .
// @router /api/teachers/:id [GET]
func GetTeacher(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.TeacherService.GetTeacher(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteTeacher .
// @router /api/teachers/:id [DELETE]
func DeleteTeacher(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.TeacherService.DeleteTeacher(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// GetTeacherStatus 公开接口，供注册后轮询审核状态
// @router /api/teachers/status [POST]
func GetTeacherStatus(ctx context.Context, c *app.RequestContext) {
	var req show.EmailReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.TeacherService.GetTeacherStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
