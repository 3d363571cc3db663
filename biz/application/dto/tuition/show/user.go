package show

import (
	"time"

	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
)

type ListTeachersReq struct {
	Status string `query:"status"`
}

// UpdateTeacherStatusReq PUT /api/teachers
type UpdateTeacherStatusReq struct {
	Id            string `json:"id"`
	TeacherStatus string `json:"teacherStatus"`
}

func (r *UpdateTeacherStatusReq) Validate() error {
	if blank(r.Id) {
		return consts.Required("id")
	}
	if blank(r.TeacherStatus) {
		return consts.Required("teacherStatus")
	}
	_, err := lifecycle.ParseApprovalStatus(r.TeacherStatus)
	return err
}

// UpdateStudentStatusReq PUT /api/signup-std
type UpdateStudentStatusReq struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

func (r *UpdateStudentStatusReq) Validate() error {
	if blank(r.Id) {
		return consts.Required("id")
	}
	if blank(r.Status) {
		return consts.Required("status")
	}
	_, err := lifecycle.ParseApprovalStatus(r.Status)
	return err
}

type TeacherItem struct {
	Id             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Mobile         string   `json:"mobile"`
	ListOfSubjects []string `json:"listOfSubjects"`
	TeacherStatus  string   `json:"teacherStatus"`
}

type StudentItem struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Mobile        string `json:"mobile"`
	StudentStatus string `json:"studentStatus,omitempty"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
}

type StudentDetail struct {
	Id          string     `json:"_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Mobile      string     `json:"mobile"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Address     Address    `json:"address"`
	Grade       string     `json:"grade"`
	FatherName  string     `json:"fatherName"`
	Country     string     `json:"country"`
}

// User 对外的用户资料，不含任何凭据字段
type User struct {
	Id             string     `json:"_id"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	Mobile         string     `json:"mobile,omitempty"`
	Role           string     `json:"role"`
	TeacherStatus  string     `json:"teacherStatus,omitempty"`
	StudentStatus  string     `json:"studentStatus,omitempty"`
	Qualification  string     `json:"qualification,omitempty"`
	Experiance     string     `json:"experiance,omitempty"`
	ListOfSubjects []string   `json:"listOfSubjects,omitempty"`
	ProfileImage   string     `json:"profileImage,omitempty"`
	CvUrl          string     `json:"cvUrl,omitempty"`
	AboutTeacher   string     `json:"aboutTeacher,omitempty"`
	IsVerified     bool       `json:"isVerified"`
	DateOfBirth    *time.Time `json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type TeacherDetailResp struct {
	Teacher *User     `json:"teacher"`
	Courses []*Course `json:"courses"`
}

type MigrateStudentStatusResp struct {
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updatedCount"`
}
