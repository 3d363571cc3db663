package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/course"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util/log"
)

type ITeacherService interface {
	ListTeachers(ctx context.Context, req *show.ListTeachersReq) ([]*show.TeacherItem, error)
	ListApprovedTeachers(ctx context.Context) ([]*show.TeacherItem, error)
	UpdateTeacherStatus(ctx context.Context, req *show.UpdateTeacherStatusReq) (*show.User, error)
	GetTeacher(ctx context.Context, req *show.IdReq) (*show.TeacherDetailResp, error)
	DeleteTeacher(ctx context.Context, req *show.IdReq) (*show.Response, error)
	GetTeacherStatus(ctx context.Context, req *show.EmailReq) (*show.TeacherStatusResp, error)
}

type TeacherService struct {
	UserMapper   user.IMongoMapper
	CourseMapper course.IMongoMapper
}

var TeacherServiceSet = wire.NewSet(
	wire.Struct(new(TeacherService), "*"),
	wire.Bind(new(ITeacherService), new(*TeacherService)),
)

// ListTeachers 可按 teacherStatus 过滤
func (s *TeacherService) ListTeachers(ctx context.Context, req *show.ListTeachersReq) ([]*show.TeacherItem, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if _, err := lifecycle.ParseApprovalStatus(req.Status); err != nil {
			return nil, err
		}
	}
	teachers, err := s.UserMapper.FindMany(ctx, &user.Query{Role: consts.RoleTeacher, TeacherStatus: req.Status})
	if err != nil {
		return nil, err
	}
	return lo.Map(teachers, toTeacherItem), nil
}

func (s *TeacherService) ListApprovedTeachers(ctx context.Context) ([]*show.TeacherItem, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	teachers, err := s.UserMapper.FindMany(ctx, &user.Query{
		Role:          consts.RoleTeacher,
		TeacherStatus: string(lifecycle.ApprovalApproved),
		NewestFirst:   true,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(teachers, toTeacherItem), nil
}

func (s *TeacherService) UpdateTeacherStatus(ctx context.Context, req *show.UpdateTeacherStatusReq) (*show.User, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	u, err := s.UserMapper.UpdateStatus(ctx, req.Id, consts.RoleTeacher, req.TeacherStatus)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrTeacherNotFound
	}
	if err != nil {
		log.CtxError(ctx, "更新教师状态失败, id=%s, err=%v", req.Id, err)
		return nil, err
	}
	log.CtxInfo(ctx, "teacher %s status -> %s", req.Id, req.TeacherStatus)
	return toUser(u), nil
}

// GetTeacher 教师资料及其负责的课程
func (s *TeacherService) GetTeacher(ctx context.Context, req *show.IdReq) (*show.TeacherDetailResp, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	teacher, err := findUserWithRole(ctx, s.UserMapper, req.Id, consts.RoleTeacher, consts.ErrTeacherNotFound)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseMapper.FindMany(ctx, &course.Query{TeacherID: req.Id})
	if err != nil {
		return nil, err
	}
	ids := lo.Map(courses, func(c *course.Course, _ int) primitive.ObjectID { return c.StudentID })
	users, err := loadUsers(ctx, s.UserMapper, ids)
	if err != nil {
		return nil, err
	}
	users[teacher.ID.Hex()] = teacher
	return &show.TeacherDetailResp{
		Teacher: toUser(teacher),
		Courses: lo.Map(courses, func(c *course.Course, _ int) *show.Course { return toCourse(c, users) }),
	}, nil
}

func (s *TeacherService) DeleteTeacher(ctx context.Context, req *show.IdReq) (*show.Response, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	if _, err := findUserWithRole(ctx, s.UserMapper, req.Id, consts.RoleTeacher, consts.ErrTeacherNotFound); err != nil {
		return nil, err
	}
	if err := s.UserMapper.Delete(ctx, req.Id); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrTeacherNotFound
		}
		return nil, err
	}
	return &show.Response{Success: true, Message: "Teacher deleted successfully"}, nil
}

// GetTeacherStatus 公开接口，查不到时按 pending 返回
func (s *TeacherService) GetTeacherStatus(ctx context.Context, req *show.EmailReq) (*show.TeacherStatusResp, error) {
	u, err := s.UserMapper.FindOneByEmail(ctx, normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		return nil, err
	}
	status := ""
	if u != nil && u.Role == consts.RoleTeacher {
		status = u.TeacherStatus
	}
	return &show.TeacherStatusResp{TeacherStatus: lifecycle.OrPending(status)}, nil
}

func toTeacherItem(u *user.User, _ int) *show.TeacherItem {
	return &show.TeacherItem{
		Id:             u.ID.Hex(),
		Name:           u.FullName,
		Email:          u.Email,
		Mobile:         orNA(u.Mobile),
		ListOfSubjects: lo.Ternary(u.ListOfSubjects == nil, []string{}, u.ListOfSubjects),
		TeacherStatus:  lifecycle.OrPending(u.TeacherStatus),
	}
}
