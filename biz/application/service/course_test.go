package service

import (
	"testing"

	"github.com/cloudwego/hertz/pkg/common/test/assert"

	"tuition-show/biz/application/dto/tuition/show"
	"tuition-show/biz/infrastructure/consts"
	"tuition-show/biz/infrastructure/repository/user"
)

type courseFixture struct {
	*env
	student, teacher, outsider *user.User
	course                     *show.Course
}

func newCourseFixture(t *testing.T, classes int64) *courseFixture {
	t.Helper()
	f := &courseFixture{env: newEnv()}
	f.student = f.users.add(consts.RoleStudent, "Ali", "ali@tuition.test")
	f.teacher = f.users.add(consts.RoleTeacher, "Usman", "usman@tuition.test")
	f.outsider = f.users.add(consts.RoleTeacher, "Bilal", "bilal@tuition.test")
	resp, err := f.env.course.CreateCourse(asUser(f.admin), &show.CreateCourseReq{
		StudentId:        f.student.ID.Hex(),
		TeacherId:        f.teacher.ID.Hex(),
		Subject:          "Physics",
		RemainingClasses: classes,
		PricePerClass:    1500,
	})
	assert.Nil(t, err)
	f.course = resp.Data
	return f
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture(t, 2)
	assert.DeepEqual(t, "Physics", f.course.Subject)
	assert.DeepEqual(t, int64(2), f.course.RemainingClasses)
	assert.DeepEqual(t, "Ali", f.course.StudentId.FullName)
	assert.DeepEqual(t, "Usman", f.course.TeacherId.FullName)

	_, err := f.env.course.CreateCourse(asUser(f.admin), &show.CreateCourseReq{StudentId: f.teacher.ID.Hex(), Subject: "Physics"})
	assert.DeepEqual(t, consts.ErrInvalidStudent, err)

	_, err = f.env.course.CreateCourse(asUser(f.admin), &show.CreateCourseReq{
		StudentId: f.student.ID.Hex(),
		TeacherId: f.student.ID.Hex(),
		Subject:   "Physics",
	})
	assert.DeepEqual(t, consts.ErrInvalidTeacher, err)

	_, err = f.env.course.CreateCourse(asUser(f.teacher), &show.CreateCourseReq{StudentId: f.student.ID.Hex(), Subject: "Physics"})
	assert.DeepEqual(t, consts.ErrAdminOnly, err)
	assert.DeepEqual(t, 1, len(f.courses.data))
}

func TestListStudentCourses(t *testing.T) {
	f := newCourseFixture(t, 2)
	req := &show.IdReq{Id: f.student.ID.Hex()}

	list, err := f.env.course.ListStudentCourses(asUser(f.student), req)
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, len(list))
	assert.DeepEqual(t, f.course.Id, list[0].Id)

	_, err = f.env.course.ListStudentCourses(asUser(f.teacher), req)
	assert.DeepEqual(t, consts.ErrForbidden, err)

	detail, err := f.env.teacher.GetTeacher(asUser(f.admin), &show.IdReq{Id: f.teacher.ID.Hex()})
	assert.Nil(t, err)
	assert.DeepEqual(t, 1, len(detail.Courses))
	assert.DeepEqual(t, "Ali", detail.Courses[0].StudentId.FullName)
}

func TestConsumeClass(t *testing.T) {
	f := newCourseFixture(t, 1)
	req := &show.IdReq{Id: f.course.Id}

	_, err := f.env.course.ConsumeClass(asUser(f.outsider), req)
	assert.DeepEqual(t, consts.ErrForbidden, err)
	_, err = f.env.course.ConsumeClass(asUser(f.student), req)
	assert.DeepEqual(t, consts.ErrForbidden, err)

	resp, err := f.env.course.ConsumeClass(asUser(f.teacher), req)
	assert.Nil(t, err)
	assert.DeepEqual(t, int64(0), resp.Data.RemainingClasses)

	_, err = f.env.course.ConsumeClass(asUser(f.admin), req)
	assert.DeepEqual(t, consts.ErrNoClassesRemaining, err)
	assert.DeepEqual(t, int64(0), f.courses.data[f.course.Id].RemainingClasses)

	_, err = f.env.course.ConsumeClass(asUser(f.admin), &show.IdReq{Id: "650000000000000000000000"})
	assert.DeepEqual(t, consts.ErrCourseNotFound, err)
}

func TestCourseMessages(t *testing.T) {
	f := newCourseFixture(t, 4)
	courseReq := &show.CourseIdReq{CourseId: f.course.Id}

	_, err := f.message.SendMessage(asUser(f.outsider), f.course.Id, &show.SendMessageReq{Message: "hi"})
	assert.DeepEqual(t, consts.ErrNotCourseMember, err)
	// 非成员的无效内容同样先得到 403
	_, err = f.message.SendMessage(asUser(f.outsider), f.course.Id, &show.SendMessageReq{})
	assert.DeepEqual(t, consts.ErrNotCourseMember, err)
	_, err = f.message.SendMessage(asUser(f.student), f.course.Id, &show.SendMessageReq{})
	assert.DeepEqual(t, consts.ErrEmptyMessage, err)
	_, err = f.message.ListMessages(asUser(f.outsider), courseReq)
	assert.DeepEqual(t, consts.ErrNotCourseMember, err)

	sent, err := f.message.SendMessage(asUser(f.student), f.course.Id, &show.SendMessageReq{Message: "When is the next class?"})
	assert.Nil(t, err)
	assert.DeepEqual(t, consts.RoleStudent, sent.Message.SenderId.Role)
	assert.DeepEqual(t, "Ali", sent.Message.SenderId.FullName)

	_, err = f.message.SendMessage(asUser(f.teacher), f.course.Id, &show.SendMessageReq{Message: "Tomorrow"})
	assert.Nil(t, err)

	list, err := f.message.ListMessages(asUser(f.teacher), courseReq)
	assert.Nil(t, err)
	assert.DeepEqual(t, 2, len(list.Messages))
	assert.DeepEqual(t, "When is the next class?", list.Messages[0].Message)
	assert.DeepEqual(t, consts.RoleTeacher, list.Messages[1].SenderId.Role)

	del := &show.DeleteMessageReq{CourseId: f.course.Id, MessageId: sent.Message.Id}
	_, err = f.message.DeleteMessage(asUser(f.teacher), del)
	assert.DeepEqual(t, consts.ErrNotMessageSender, err)

	_, err = f.message.DeleteMessage(asUser(f.student), &show.DeleteMessageReq{CourseId: "650000000000000000000000", MessageId: sent.Message.Id})
	assert.DeepEqual(t, consts.ErrMessageNotInCourse, err)

	_, err = f.message.DeleteMessage(asUser(f.student), del)
	assert.Nil(t, err)
	_, err = f.message.DeleteMessage(asUser(f.admin), del)
	assert.DeepEqual(t, consts.ErrMessageNotFound, err)

	// 删除课程时清理留言
	_, err = f.env.course.DeleteCourse(asUser(f.admin), &show.IdReq{Id: f.course.Id})
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, len(f.messages.data))
	_, err = f.message.ListMessages(asUser(f.student), courseReq)
	assert.DeepEqual(t, consts.ErrCourseNotFound, err)
}
