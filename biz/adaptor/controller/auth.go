package controller

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/provider"
)

// TeacherSignUp .
// @router /api/auth/teacher-signup [POST]
func TeacherSignUp(ctx context.Context, c *app.RequestContext) {
	var req show.TeacherSignUpReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.TeacherSignUp(ctx, &req)
	adaptor.PostProcessWithStatus(ctx, c, &req, resp, err, http.StatusCreated)
}

// StudentSignUp .
// @router /api/auth/student-signup [POST]
func StudentSignUp(ctx context.Context, c *app.RequestContext) {
	var req show.StudentSignUpReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.StudentSignUp(ctx, &req)
	adaptor.PostProcessWithStatus(ctx, c, &req, resp, err, http.StatusCreated)
}

// SendOtp .
// @router /api/auth/send-otp [POST]
func SendOtp(ctx context.Context, c *app.RequestContext) {
	var req show.EmailReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.SendOtp(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// VerifyOtp .
// @router /api/auth/verify-otp [POST]
func VerifyOtp(ctx context.Context, c *app.RequestContext) {
	var req show.VerifyOtpReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.VerifyOtp(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// CheckRole .
// @router /api/auth/check-role [POST]
func CheckRole(ctx context.Context, c *app.RequestContext) {
	var req show.EmailReq
	if err := adaptor.BindJSON(c, &req); err != nil {
		adaptor.WriteError(ctx, c, &req, err)
		return
	}

	p := provider.Get()
	resp, err := p.AuthService.CheckRole(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
