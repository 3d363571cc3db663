package controller

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// CreateCourse .
// @router /api/course [POST]
func CreateCourse(ctx context.Context, c *app.RequestContext) {
	var req show.CreateCourseReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseService.CreateCourse(ctx, &req)
	adaptor.PostProcessWithStatus(ctx, c, &req, resp, err, http.StatusCreated)
}

// ListStudentCourses .
// @router /api/students/:id/my-courses [GET]
func ListStudentCourses(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseService.ListStudentCourses(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ConsumeClass .
// @router /api/course/:id/consume [PUT]
func ConsumeClass(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseService.ConsumeClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// DeleteCourse .
// @router /api/course/:id [DELETE]
func DeleteCourse(ctx context.Context, c *app.RequestContext) {
	var req show.IdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseService.DeleteCourse(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// ListCourseMessages .
// @router /api/courseMessages/:courseId [GET]
func ListCourseMessages(ctx context.Context, c *app.RequestContext) {
	var req show.CourseIdReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseMessageService.ListMessages(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// SendCourseMessage .
// @router /api/courseMessages/:courseId [POST]
func SendCourseMessage(ctx context.Context, c *app.RequestContext) {
	var req show.SendMessageReq
	if err := adaptor.DecodeJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseMessageService.SendMessage(ctx, c.Param("courseId"), &req)
	adaptor.PostProcessWithStatus(ctx, c, &req, resp, err, http.StatusCreated)
}

// DeleteCourseMessage .
// @router /api/courseMessages/:courseId [DELETE]
func DeleteCourseMessage(ctx context.Context, c *app.RequestContext) {
	var req show.DeleteMessageReq
	if err := adaptor.BindRequest(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.CourseMessageService.DeleteMessage(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
