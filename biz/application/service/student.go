package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/samber/lo"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util/log"
)

type IStudentService interface {
	ListSignUpStudents(ctx context.Context) ([]*show.StudentItem, error)
	UpdateStudentStatus(ctx context.Context, req *show.UpdateStudentStatusReq) (*show.User, error)
	ListStudents(ctx context.Context) ([]*show.StudentItem, error)
	GetStudent(ctx context.Context, req *show.IdReq) (*show.StudentDetail, error)
	DeleteStudent(ctx context.Context, req *show.IdReq) (*show.Response, error)
	MigrateStudentStatus(ctx context.Context) (*show.MigrateStudentStatusResp, error)
	GetStudentStatus(ctx context.Context, req *show.EmailReq) (*show.StudentStatusResp, error)
}

type StudentService struct {
	UserMapper      user.IMongoMapper
	DemoClassMapper democlass.IMongoMapper
}

var StudentServiceSet = wire.NewSet(
	wire.Struct(new(StudentService), "*"),
	wire.Bind(new(IStudentService), new(*StudentService)),
)

// ListSignUpStudents 所有学生及其审核状态
func (s *StudentService) ListSignUpStudents(ctx context.Context) ([]*show.StudentItem, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	students, err := s.UserMapper.FindMany(ctx, &user.Query{Role: consts.RoleStudent})
	if err != nil {
		return nil, err
	}
	return lo.Map(students, func(u *user.User, _ int) *show.StudentItem {
		item := toStudentItem(u)
		item.StudentStatus = lifecycle.OrPending(u.StudentStatus)
		return item
	}), nil
}

func (s *StudentService) UpdateStudentStatus(ctx context.Context, req *show.UpdateStudentStatusReq) (*show.User, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	u, err := s.UserMapper.UpdateStatus(ctx, req.Id, consts.RoleStudent, req.Status)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrStudentNotFound
	}
	if err != nil {
		log.CtxError(ctx, "更新学生状态失败, id=%s, err=%v", req.Id, err)
		return nil, err
	}
	if u.StudentStatus != req.Status {
		return nil, consts.ErrStatusNotPersisted
	}
	return toUser(u), nil
}

// ListStudents 完成过体验课或已审核通过的学生
func (s *StudentService) ListStudents(ctx context.Context) ([]*show.StudentItem, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	completed, err := s.DemoClassMapper.StudentIDsWithStatus(ctx, string(lifecycle.BookingCompleted))
	if err != nil {
		return nil, err
	}
	students, err := s.UserMapper.FindMany(ctx, &user.Query{Role: consts.RoleStudent})
	if err != nil {
		return nil, err
	}
	done := lo.SliceToMap(completed, func(id string) (string, struct{}) { return id, struct{}{} })
	students = lo.Filter(students, func(u *user.User, _ int) bool {
		_, ok := done[u.ID.Hex()]
		return ok || u.StudentStatus == string(lifecycle.ApprovalApproved)
	})
	return lo.Map(students, func(u *user.User, _ int) *show.StudentItem { return toStudentItem(u) }), nil
}

// GetStudent 学生资料，年级等信息取自最近一次体验课
func (s *StudentService) GetStudent(ctx context.Context, req *show.IdReq) (*show.StudentDetail, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	u, err := findUserWithRole(ctx, s.UserMapper, req.Id, consts.RoleStudent, consts.ErrStudentNotFound)
	if err != nil {
		return nil, err
	}
	latest, err := s.DemoClassMapper.LatestByStudent(ctx, req.Id)
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		return nil, err
	}

	res := &show.StudentDetail{
		Id:          u.ID.Hex(),
		Name:        u.FullName,
		Email:       u.Email,
		Mobile:      orNA(u.Mobile),
		DateOfBirth: u.DateOfBirth,
		Grade:       consts.NotAvailable,
		FatherName:  consts.NotAvailable,
		Country:     consts.NotAvailable,
	}
	if u.Address != nil {
		copyFields(&res.Address, u.Address)
		if u.Address.Country != "" {
			res.Country = u.Address.Country
		}
	}
	if latest != nil {
		res.Grade = orNA(latest.Grade)
		res.FatherName = orNA(latest.FatherName)
		if latest.Country != "" {
			res.Country = latest.Country
		}
	}
	return res, nil
}

// DeleteStudent 删除学生及其全部体验课
func (s *StudentService) DeleteStudent(ctx context.Context, req *show.IdReq) (*show.Response, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	if _, err := findUserWithRole(ctx, s.UserMapper, req.Id, consts.RoleStudent, consts.ErrStudentNotFound); err != nil {
		return nil, err
	}
	// 先删体验课，任何时刻都不存在无主预约
	n, err := s.DemoClassMapper.DeleteByStudent(ctx, req.Id)
	if err != nil {
		log.CtxError(ctx, "删除学生体验课失败, student=%s, err=%v", req.Id, err)
		return nil, err
	}
	if err = s.UserMapper.Delete(ctx, req.Id); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrStudentNotFound
		}
		return nil, err
	}
	log.CtxInfo(ctx, "student %s deleted with %d demo classes", req.Id, n)
	return &show.Response{Success: true, Message: "Student deleted successfully"}, nil
}

// MigrateStudentStatus 为历史学生补齐 studentStatus，可重复执行
func (s *StudentService) MigrateStudentStatus(ctx context.Context) (*show.MigrateStudentStatusResp, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	n, err := s.UserMapper.FillMissingStudentStatus(ctx)
	if err != nil {
		log.CtxError(ctx, "迁移学生状态失败: %v", err)
		return nil, err
	}
	return &show.MigrateStudentStatusResp{
		Message:      "Migration completed",
		UpdatedCount: n,
	}, nil
}

func (s *StudentService) GetStudentStatus(ctx context.Context, req *show.EmailReq) (*show.StudentStatusResp, error) {
	u, err := s.UserMapper.FindOneByEmail(ctx, normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, consts.ErrNotFound) {
		return nil, err
	}
	status := ""
	if u != nil && u.Role == consts.RoleStudent {
		status = u.StudentStatus
	}
	return &show.StudentStatusResp{StudentStatus: lifecycle.OrPending(status)}, nil
}

func toStudentItem(u *user.User) *show.StudentItem {
	return &show.StudentItem{
		Id:     u.ID.Hex(),
		Name:   u.FullName,
		Email:  u.Email,
		Mobile: orNA(u.Mobile),
	}
}
