package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/wire"

	"tuition-show/biz/adaptor"
	"tuition-show/biz/application/dto/basic"
	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/cache"
	"tuition-show/biz/infrastructure/config"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util/log"
)

type IAuthService interface {
	TeacherSignUp(ctx context.Context, req *show.TeacherSignUpReq) (*show.Response, error)
	StudentSignUp(ctx context.Context, req *show.StudentSignUpReq) (*show.Response, error)
	SendOtp(ctx context.Context, req *show.EmailReq) (*show.Response, error)
	VerifyOtp(ctx context.Context, req *show.VerifyOtpReq) (*show.SignInResp, error)
	CheckRole(ctx context.Context, req *show.EmailReq) (*show.CheckRoleResp, error)
}

type AuthService struct {
	Config       *config.Config
	UserMapper   user.IMongoMapper
	OtpCache     cache.IOtpCacheMapper
	Notification INotificationService
}

var AuthServiceSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),
)

func (s *AuthService) TeacherSignUp(ctx context.Context, req *show.TeacherSignUpReq) (*show.Response, error) {
	u := &user.User{
		FullName:       strings.TrimSpace(req.FullName),
		Email:          normalizeEmail(req.Email),
		Mobile:         req.Mobile,
		Role:           consts.RoleTeacher,
		TeacherStatus:  string(lifecycle.ApprovalPending),
		Qualification:  req.Qualification,
		Experiance:     req.GetExperience(),
		ListOfSubjects: req.ListOfSubjects,
		ProfileImage:   req.ProfileImage,
		CvUrl:          req.CvUrl,
		AboutTeacher:   req.AboutTeacher,
	}
	return s.signUp(ctx, u)
}

func (s *AuthService) StudentSignUp(ctx context.Context, req *show.StudentSignUpReq) (*show.Response, error) {
	u := &user.User{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         normalizeEmail(req.Email),
		Mobile:        req.Mobile,
		Role:          consts.RoleStudent,
		StudentStatus: string(lifecycle.ApprovalPending),
	}
	return s.signUp(ctx, u)
}

// signUp 新用户未验证，随后发送验证码
func (s *AuthService) signUp(ctx context.Context, u *user.User) (*show.Response, error) {
	existing, err := s.UserMapper.FindOneByEmail(ctx, u.Email)
	switch {
	case err == nil && existing.Role == u.Role:
		return nil, consts.ErrRepeatedSignUp
	case err == nil:
		return nil, consts.ErrEmailTaken
	case !errors.Is(err, consts.ErrNotFound):
		log.CtxError(ctx, "查询用户失败: %v", err)
		return nil, err
	}

	if err = s.UserMapper.Insert(ctx, u); err != nil {
		log.CtxError(ctx, "注册失败, email=%s, err=%v", u.Email, err)
		return nil, err
	}
	if err = s.issueOtp(ctx, u.Email); err != nil {
		return nil, err
	}
	return &show.Response{Success: true, Message: "OTP sent successfully!"}, nil
}

func (s *AuthService) SendOtp(ctx context.Context, req *show.EmailReq) (*show.Response, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.findByEmail(ctx, email); err != nil {
		return nil, err
	}
	if err := s.issueOtp(ctx, email); err != nil {
		return nil, err
	}
	return &show.Response{Success: true, Message: "OTP sent successfully!"}, nil
}

// VerifyOtp 校验通过后标记已验证并签发会话
func (s *AuthService) VerifyOtp(ctx context.Context, req *show.VerifyOtpReq) (*show.SignInResp, error) {
	email := normalizeEmail(req.Email)
	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	code, err := s.OtpCache.Get(ctx, email)
	if err != nil {
		log.CtxError(ctx, "读取验证码失败: %v", err)
		return nil, err
	}
	if code == "" || subtle.ConstantTimeCompare([]byte(code), []byte(strings.TrimSpace(req.Otp))) != 1 {
		return nil, consts.ErrVerifyCode
	}
	if err = s.OtpCache.Delete(ctx, email); err != nil {
		log.CtxError(ctx, "删除验证码失败: %v", err)
	}
	if !u.IsVerified {
		if err = s.UserMapper.MarkVerified(ctx, u.ID.Hex()); err != nil {
			return nil, err
		}
	}

	meta := &basic.UserMeta{UserId: u.ID.Hex(), Role: u.Role, Email: u.Email}
	accessToken, accessExpire, err := adaptor.GenerateJwtToken(s.Config.Auth, meta)
	if err != nil {
		log.CtxError(ctx, "签发 token 失败: %v", err)
		return nil, err
	}
	return &show.SignInResp{
		Id:           meta.UserId,
		AccessToken:  accessToken,
		AccessExpire: accessExpire,
		Role:         u.Role,
		FullName:     u.FullName,
	}, nil
}

func (s *AuthService) CheckRole(ctx context.Context, req *show.EmailReq) (*show.CheckRoleResp, error) {
	u, err := s.findByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	return &show.CheckRoleResp{Role: u.Role}, nil
}

func (s *AuthService) findByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := s.UserMapper.FindOneByEmail(ctx, email)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrNotSignUp
	}
	return u, err
}

func (s *AuthService) issueOtp(ctx context.Context, email string) error {
	code, err := generateOtp()
	if err != nil {
		return err
	}
	if err = s.OtpCache.Set(ctx, email, code); err != nil {
		log.CtxError(ctx, "保存验证码失败: %v", err)
		return err
	}
	if err = s.Notification.SendOtp(ctx, email, code); err != nil {
		return consts.ErrSend
	}
	return nil
}

// generateOtp 生成六位数字验证码
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", consts.OtpLength, n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
