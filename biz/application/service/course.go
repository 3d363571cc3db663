package service

import (
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/domain/access"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/course"
	"tuition-show/biz/infrastructure/repository/user"
	"tuition-show/biz/infrastructure/util/log"
)

type ICourseService interface {
	CreateCourse(ctx context.Context, req *show.CreateCourseReq) (*show.CourseResp, error)
	ListStudentCourses(ctx context.Context, req *show.IdReq) ([]*show.Course, error)
	ConsumeClass(ctx context.Context, req *show.IdReq) (*show.CourseResp, error)
	DeleteCourse(ctx context.Context, req *show.IdReq) (*show.Response, error)
}

type CourseService struct {
	CourseMapper  course.IMongoMapper
	MessageMapper course.IMessageMongoMapper
	UserMapper    user.IMongoMapper
}

var CourseServiceSet = wire.NewSet(
	wire.Struct(new(CourseService), "*"),
	wire.Bind(new(ICourseService), new(*CourseService)),
)

// CreateCourse 管理员为学生开课，教师可后续指派
func (s *CourseService) CreateCourse(ctx context.Context, req *show.CreateCourseReq) (*show.CourseResp, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	student, err := findUserWithRole(ctx, s.UserMapper, req.StudentId, consts.RoleStudent, consts.ErrInvalidStudent)
	if err != nil {
		return nil, err
	}
	users := map[string]*user.User{student.ID.Hex(): student}

	c := &course.Course{
		StudentID:        student.ID,
		Subject:          req.Subject,
		RemainingClasses: req.RemainingClasses,
		PricePerClass:    req.PricePerClass,
	}
	if req.TeacherId != "" {
		teacher, err := findUserWithRole(ctx, s.UserMapper, req.TeacherId, consts.RoleTeacher, consts.ErrInvalidTeacher)
		if err != nil {
			return nil, err
		}
		c.TeacherID = teacher.ID
		users[teacher.ID.Hex()] = teacher
	}
	if err = s.CourseMapper.Insert(ctx, c); err != nil {
		log.CtxError(ctx, "创建课程失败: %v", err)
		return nil, err
	}
	return &show.CourseResp{Success: true, Data: toCourse(c, users)}, nil
}

func (s *CourseService) ListStudentCourses(ctx context.Context, req *show.IdReq) ([]*show.Course, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	if !access.CanReadStudentCourses(actor, req.Id) {
		return nil, consts.ErrForbidden
	}
	courses, err := s.CourseMapper.FindMany(ctx, &course.Query{StudentID: req.Id})
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, courses)
}

// ConsumeClass 上完一节课后扣减余量
func (s *CourseService) ConsumeClass(ctx context.Context, req *show.IdReq) (*show.CourseResp, error) {
	actor, err := currentActor(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.findOne(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if !access.CanConsumeCourse(actor, hexOrEmpty(c.TeacherID)) {
		return nil, consts.ErrForbidden
	}
	c, err = s.CourseMapper.Consume(ctx, req.Id)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	res, err := s.populate(ctx, []*course.Course{c})
	if err != nil {
		return nil, err
	}
	return &show.CourseResp{Success: true, Data: res[0]}, nil
}

// DeleteCourse 删除课程及其留言
func (s *CourseService) DeleteCourse(ctx context.Context, req *show.IdReq) (*show.Response, error) {
	if _, err := adminActor(ctx); err != nil {
		return nil, err
	}
	if err := s.CourseMapper.Delete(ctx, req.Id); err != nil {
		if errors.Is(err, consts.ErrNotFound) {
			return nil, consts.ErrCourseNotFound
		}
		return nil, err
	}
	if _, err := s.MessageMapper.DeleteByCourse(ctx, req.Id); err != nil {
		log.CtxError(ctx, "删除课程留言失败, course=%s, err=%v", req.Id, err)
		return nil, err
	}
	return &show.Response{Success: true, Message: "Course deleted successfully"}, nil
}

func (s *CourseService) findOne(ctx context.Context, id string) (*course.Course, error) {
	c, err := s.CourseMapper.FindOne(ctx, id)
	if errors.Is(err, consts.ErrNotFound) {
		return nil, consts.ErrCourseNotFound
	}
	return c, err
}

func (s *CourseService) populate(ctx context.Context, courses []*course.Course) ([]*show.Course, error) {
	ids := make([]primitive.ObjectID, 0, len(courses)*2)
	for _, c := range courses {
		ids = append(ids, c.StudentID, c.TeacherID)
	}
	users, err := loadUsers(ctx, s.UserMapper, ids)
	if err != nil {
		return nil, err
	}
	return lo.Map(courses, func(c *course.Course, _ int) *show.Course { return toCourse(c, users) }), nil
}

func toCourse(c *course.Course, users map[string]*user.User) *show.Course {
	res := &show.Course{
		Id:        c.ID.Hex(),
		StudentId: toPerson(c.StudentID, users, false),
		TeacherId: toPerson(c.TeacherID, users, false),
	}
	copyFields(res, c)
	return res
}

func hexOrEmpty(id primitive.ObjectID) string {
	if id.IsZero() {
		return ""
	}
	return id.Hex()
}
