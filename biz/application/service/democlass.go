package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/access"
	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/event"
	"tuition-show/biz/infrastructure/metrics"
	"tuition-show/biz/infrastructure/repository/democlass"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util"
	"tuition-show/biz/infrastructure/util/log"
)

type IDemoClassService interface {
	CreateDemoClass(ctx context.Context, req *show.CreateDemoClassReq) (*show.DemoClassResp, error)
	GetDemoClass(ctx context.Context, req *show.IdReq) (*show.DemoClass, error)
	ListDemoClasses(ctx context.Context) ([]*show.DemoClass, error)
	ListAssignedDemoClasses(ctx context.Context) ([]*show.DemoClass, error)
	UpdateDemoClass(ctx context.Context, req *show.UpdateDemoClassReq) (*show.DemoClassResp, error)
	DeleteDemoClass(ctx context.Context, req *show.IdReq) (*show.Response, error)
}

type DemoClassService struct {
	DemoClassMapper democlass.IMongoMapper
	UserMapper      user.IMongoMapper
	Notification    INotificationService
	Publisher       event.Publisher
	Metrics         *metrics.Metrics
}

var DemoClassServiceSet = wire.NewSet(
	wire.Struct(new(DemoClassService), "*"),
	wire.Bind(new(IDemoClassService), new(*DemoClassService)),
)

// CreateDemoClass 学生提交体验课申请
func (s *DemoClassService) CreateDemoClass(ctx context.Context, req *show.CreateDemoClassReq) (*show.DemoClassResp, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	student, err := s.UserMapper.FindOne(ctx, actor.ID)
	if errors.Is(err, consts.ErrNotFound) || errors.Is(err, consts.ErrInvalidObjectId) {
		return nil, consts.ErrNotAuthentication
	}
	if err != nil {
		log.CtxError(ctx, "获取用户信息失败: %v", err)
		return nil, err
	}

	date, err := show.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	d := &democlass.DemoClass{
		StudentID:          student.ID,
		StudentName:        student.FullName,
		BookingDateAndTime: date,
		TimeZone:           req.TimeZone,
		Subject:            req.ResolvedSubject(),
		Topic:              req.Topic,
		Grade:              req.Grade,
		City:               req.City,
		Country:            req.Country,
		FatherName:         req.FatherName,
		Status:             string(lifecycle.BookingPending),
	}
	if err = s.DemoClassMapper.Insert(ctx, d); err != nil {
		log.CtxError(ctx, "创建体验课失败: %v", err)
		return nil, err
	}
	log.CtxInfo(ctx, "demo class created, id=%s, req=%s", d.ID.Hex(), util.JSONF(req))

	s.Notification.NotifyDemoCreated(ctx, d, req.Email)
	s.publish(ctx, event.BookingCreated, d)

	users := map[string]*user.User{student.ID.Hex(): student}
	return &show.DemoClassResp{Success: true, Data: toDemoClass(d, users)}, nil
}

func (s *DemoClassService) GetDemoClass(ctx context.Context, req *show.IdReq) (*show.DemoClass, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.findOne(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if !access.CanReadBooking(actor, d.StudentID.Hex()) {
		return nil, consts.ErrForbidden
	}
	res, err := s.populate(ctx, []*democlass.DemoClass{d})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// ListDemoClasses 管理员看全部，其他人只看自己的，按上课时间倒序
func (s *DemoClassService) ListDemoClasses(ctx context.Context) ([]*show.DemoClass, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	q := &democlass.Query{}
	if !actor.IsAdmin() {
		q.StudentID = actor.ID
	}
	data, err := s.DemoClassMapper.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, data)
}

// ListAssignedDemoClasses 教师查看分配给自己的课，最近的在前
func (s *DemoClassService) ListAssignedDemoClasses(ctx context.Context) ([]*show.DemoClass, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !access.CanListAssigned(actor) {
		return nil, consts.ErrTeacherOnly
	}
	data, err := s.DemoClassMapper.FindMany(ctx, &democlass.Query{TeacherID: actor.ID, Ascending: true})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, data)
}

// UpdateDemoClass 管理员局部更新；状态变更按状态机校验并以当前状态做条件写入
func (s *DemoClassService) UpdateDemoClass(ctx context.Context, req *show.UpdateDemoClassReq) (*show.DemoClassResp, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteBooking(actor) {
		return nil, consts.ErrAdminOnly
	}
	cur, err := s.findOne(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	upd := &democlass.Update{}
	if req.TeacherId != nil {
		teacher, err := findUserWithRole(ctx, s.UserMapper, *req.TeacherId, consts.RoleTeacher, consts.ErrInvalidTeacher)
		if err != nil {
			return nil, err
		}
		upd.TeacherID = &teacher.ID
	}
	if req.Status != nil {
		next, err := lifecycle.Transition(lifecycle.BookingStatus(cur.Status), *req.Status)
		if err != nil {
			return nil, err
		}
		if string(next) != cur.Status {
			upd.Status = lo.ToPtr(string(next))
			upd.ExpectStatus = cur.Status
		}
	}
	if req.JoinLink != nil {
		upd.JoinLink = req.JoinLink
	}
	if req.BookingDateAndTime != nil {
		date, err := show.ParseDate(*req.BookingDateAndTime)
		if err != nil {
			return nil, err
		}
		upd.BookingDateAndTime = &date
	}
	if req.TimeZone != nil {
		upd.TimeZone = req.TimeZone
	}

	updated := cur
	if !upd.Empty() {
		updated, err = s.DemoClassMapper.Update(ctx, req.Id, upd)
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrDemoClassNotFound
		}
		if err != nil {
			log.CtxError(ctx, "更新体验课失败, id=%s, err=%v", req.Id, err)
			return nil, err
		}
	}

	res, err := s.populate(ctx, []*democlass.DemoClass{updated})
	if err != nil {
		return nil, err
	}
	if upd.Status != nil {
		s.publish(ctx, event.StatusChanged(updated.Status), updated)
		email := ""
		if res[0].StudentId != nil {
			email = res[0].StudentId.Email
		}
		s.Notification.NotifyDemoStatus(ctx, updated, email)
	}
	return &show.DemoClassResp{Success: true, Data: res[0]}, nil
}

func (s *DemoClassService) DeleteDemoClass(ctx context.Context, req *show.IdReq) (*show.Response, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !access.CanWriteBooking(actor) {
		return nil, consts.ErrAdminOnly
	}
	d, err := s.findOne(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if err = s.DemoClassMapper.Delete(ctx, req.Id); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrDemoClassNotFound
		}
		return nil, err
	}
	s.publish(ctx, event.BookingDeleted, d)
	return &show.Response{Success: true, Message: "Demo Class deleted successfully."}, nil
}

func (s *DemoClassService) findOne(ctx context.Context, id string) (*democlass.DemoClass, error) {
	d, err := s.DemoClassMapper.FindOne(ctx, id)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrDemoClassNotFound
	}
	return d, err
}

// populate 填充学生与教师信息
func (s *DemoClassService) populate(ctx context.Context, data []*democlass.DemoClass) ([]*show.DemoClass, error) {
	ids := make([]primitive.ObjectID, 0, len(data)*2)
	for _, d := range data {
		ids = append(ids, d.StudentID, d.TeacherID)
	}
	users, err := loadUsers(ctx, s.UserMapper, ids)
	if err != nil {
		return nil, err
	}
	return lo.Map(data, func(d *democlass.DemoClass, _ int) *show.DemoClass {
		return toDemoClass(d, users)
	}), nil
}

func (s *DemoClassService) publish(ctx context.Context, typ string, d *democlass.DemoClass) {
	s.Metrics.ObserveBooking(typ)
	teacherID := ""
	if !d.TeacherID.IsZero() {
		teacherID = d.TeacherID.Hex()
	}
	e := event.NewBookingEvent(typ, d.ID.Hex(), d.StudentID.Hex(), teacherID, d.Status)
	if err := s.Publisher.Publish(ctx, e); err != nil {
		log.CtxError(ctx, "publish booking event failed, type=%s, booking=%s, err=%v", typ, d.ID.Hex(), err)
	}
}

func toDemoClass(d *democlass.DemoClass, users map[string]*user.User) *show.DemoClass {
	res := &show.DemoClass{
		Id:        d.ID.Hex(),
		StudentId: toPerson(d.StudentID, users, true),
		TeacherId: toPerson(d.TeacherID, users, false),
	}
	copyFields(res, d)
	return res
}
