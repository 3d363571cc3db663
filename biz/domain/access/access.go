// Package access 集中所有资源的鉴权判断，业务层只调用这里的谓词
package access

import (
	"tuition-show/biz/application/dto/basic"
	"tuition-show/biz/infrastructure/consts"
)

type Actor struct {
	ID   string
	Role string
}

func FromMeta(meta *basic.UserMeta) Actor {
	return Actor{ID: meta.GetUserId(), Role: meta.GetRole()}
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

// CanAdminister 审核、删除、后台统计等管理操作
func CanAdminister(a Actor) bool {
	return a.Authenticated() && a.IsAdmin()
}

// CanReadBooking 管理员或预约所属学生
func CanReadBooking(a Actor, studentID string) bool {
	return a.Authenticated() && (a.IsAdmin() || a.ID == studentID)
}

// CanWriteBooking 仅管理员可修改预约
func CanWriteBooking(a Actor) bool {
	return CanAdminister(a)
}

func CanListAssigned(a Actor) bool {
	return a.Authenticated() && a.Role == consts.RoleTeacher
}

// CanAccessCourse 课程成员（学生或指派教师）与管理员
func CanAccessCourse(a Actor, studentID, teacherID string) bool {
	if !a.Authenticated() {
		return false
	}
	return a.IsAdmin() || a.ID == studentID || (teacherID != "" && a.ID == teacherID)
}

func CanDeleteMessage(a Actor, senderID string) bool {
	return a.Authenticated() && (a.IsAdmin() || a.ID == senderID)
}

func CanReadStudentCourses(a Actor, studentID string) bool {
	return a.Authenticated() && (a.IsAdmin() || a.ID == studentID)
}

// CanConsumeCourse 管理员或课程指派的教师
func CanConsumeCourse(a Actor, teacherID string) bool {
	if !a.Authenticated() {
		return false
	}
	return a.IsAdmin() || (teacherID != "" && a.ID == teacherID)
}
