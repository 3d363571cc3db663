package controller

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// ListSignUpStudents .
// @router /api/signup-std [GET]
func ListSignUpStudents(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StudentService.ListSignUpStudents(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// UpdateStudentStatus .
// @router /api/signup-std [PUT]
func UpdateStudentStatus(ctx context.Context, c *app.RequestContext) {
	var req show.UpdateStudentStatusReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.StudentService.UpdateStudentStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListStudents .
// @router /api/students [GET]
func ListStudents(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StudentService.ListStudents(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// GetStudent .
// @router /api/students/:id [GET]
func GetStudent(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.StudentService.GetStudent(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteStudent 同时删除该学生的全部预约
// @router /api/students/:id [DELETE]
func DeleteStudent(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.StudentService.DeleteStudent(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// MigrateStudentStatus .
// @router /api/migrate-student-status [POST]
func MigrateStudentStatus(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StudentService.MigrateStudentStatus(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// GetStudentStatus .
// @router /api/students/status [POST]
func GetStudentStatus(ctx context.Context, c *app.RequestContext) {
	var req show.EmailReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.StudentService.GetStudentStatus(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
