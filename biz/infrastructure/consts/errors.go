package consts

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Errno struct {
	err  error
	code codes.Code
}

// GRPCStatus 实现 GRPCStatus 方法
func (en *Errno) GRPCStatus() *status.Status {
	return status.New(en.code, en.err.Error())
}

// 实现 Error 方法
func (en *Errno) Error() string {
	return en.err.Error()
}

func (en *Errno) Code() codes.Code {
	return en.code
}

// Is 按错误码和文案比较，使 errors.Is 能识别同一哨兵的副本
func (en *Errno) Is(target error) bool {
	var t *Errno
	if !errors.As(target, &t) {
		return false
	}
	return t.code == en.code && t.err.Error() == en.err.Error()
}

// NewErrno 创建自定义错误
func NewErrno(code codes.Code, err error) *Errno {
	return &Errno{
		err:  err,
		code: code,
	}
}

// Validation 构造参数校验错误，文案直接返回给调用方
func Validation(format string, args ...any) *Errno {
	return NewErrno(codes.InvalidArgument, fmt.Errorf(format, args...))
}

// Required 缺少必填字段
func Required(field string) *Errno {
	return Validation("%s is required", field)
}

// 会话与权限
var (
	ErrNotAuthentication = NewErrno(codes.Unauthenticated, errors.New("Unauthorized. Please log in."))
	ErrForbidden         = NewErrno(codes.PermissionDenied, errors.New("Forbidden"))
	ErrAdminOnly         = NewErrno(codes.PermissionDenied, errors.New("Unauthorized. Admins only."))
	ErrTeacherOnly       = NewErrno(codes.PermissionDenied, errors.New("Only teachers can view assigned demo classes."))
	ErrNotCourseMember   = NewErrno(codes.PermissionDenied, errors.New("You are not a member of this course"))
	ErrNotMessageSender  = NewErrno(codes.PermissionDenied, errors.New("You are not authorized to delete this message"))
)

// 业务错误
var (
	ErrInvalidTeacher     = NewErrno(codes.InvalidArgument, errors.New("Invalid teacher ID or User is not a teacher."))
	ErrInvalidStudent     = NewErrno(codes.InvalidArgument, errors.New("Invalid student ID or User is not a student."))
	ErrInvalidStatus      = NewErrno(codes.InvalidArgument, errors.New("Invalid status"))
	ErrIllegalTransition  = NewErrno(codes.InvalidArgument, errors.New("Illegal status transition"))
	ErrStatusChanged      = NewErrno(codes.Aborted, errors.New("Demo class status was changed by another request, please reload"))
	ErrRepeatedSignUp     = NewErrno(codes.AlreadyExists, errors.New("User already exists. Please login."))
	ErrEmailTaken         = NewErrno(codes.AlreadyExists, errors.New("Email is already registered with another role."))
	ErrNotSignUp          = NewErrno(codes.NotFound, errors.New("User not found."))
	ErrVerifyCode         = NewErrno(codes.InvalidArgument, errors.New("Invalid or expired OTP."))
	ErrSend               = NewErrno(codes.Unavailable, errors.New("Failed to send OTP, please retry."))
	ErrEmptyMessage       = NewErrno(codes.InvalidArgument, errors.New("Message content or attachment is required"))
	ErrMessageNotInCourse = NewErrno(codes.InvalidArgument, errors.New("Message does not belong to this course"))
	ErrNoClassesRemaining = NewErrno(codes.FailedPrecondition, errors.New("No classes remaining on this course"))
	ErrStatusNotPersisted = NewErrno(codes.Internal, errors.New("Status not saved."))
	ErrServer             = NewErrno(codes.Internal, errors.New("Server Error"))
	ErrDemoClassNotFound  = NewErrno(codes.NotFound, errors.New("Demo Class not found."))
	ErrStudentNotFound    = NewErrno(codes.NotFound, errors.New("Student not found"))
	ErrTeacherNotFound    = NewErrno(codes.NotFound, errors.New("Teacher not found"))
	ErrCourseNotFound     = NewErrno(codes.NotFound, errors.New("Course not found"))
	ErrMessageNotFound    = NewErrno(codes.NotFound, errors.New("Message not found"))
)

// ErrInvalidParams 调用时错误
var (
	ErrInvalidParams = NewErrno(codes.InvalidArgument, errors.New("Invalid request body"))
)

// 数据库相关错误
var (
	ErrNotFound        = NewErrno(codes.NotFound, errors.New("not found"))
	ErrInvalidObjectId = NewErrno(codes.InvalidArgument, errors.New("Invalid id"))
)
