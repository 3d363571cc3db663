package show

import (
	"time"

	"tuition-show/biz/domain/lifecycle"
	"tuition-show/biz/infrastructure/consts"
)

type CreateDemoClassReq struct {
	FatherName   string `json:"fatherName"`
	Email        string `json:"email"`
	Grade        string `json:"grade"`
	Subject      string `json:"subject"`
	Topic        string `json:"topic,omitempty"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Date         string `json:"date"`
	OtherSubject string `json:"otherSubject,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	TimeZone     string `json:"timeZone,omitempty"`
}

// Validate 按字段顺序报告第一个缺失的必填项
func (r *CreateDemoClassReq) Validate() error {
	required := []struct{ name, value string }{
		{"fatherName", r.FatherName},
		{"email", r.Email},
		{"grade", r.Grade},
		{"subject", r.Subject},
		{"city", r.City},
		{"country", r.Country},
		{"date", r.Date},
	}
	for _, f := range required {
		if blank(f.value) {
			return consts.Required(f.name)
		}
	}
	if r.Subject == consts.SubjectOther && blank(r.OtherSubject) {
		return consts.Required("otherSubject")
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	return lifecycle.ValidateTimeZone(r.TimeZone)
}

// ResolvedSubject subject 为 other 时以 otherSubject 入库
func (r *CreateDemoClassReq) ResolvedSubject() string {
	if r.Subject == consts.SubjectOther {
		return r.OtherSubject
	}
	return r.Subject
}

type UpdateDemoClassReq struct {
	Id                 string  `json:"id"`
	Status             *string `json:"status,omitempty"`
	TeacherId          *string `json:"teacherId,omitempty"`
	JoinLink           *string `json:"joinLink,omitempty"`
	BookingDateAndTime *string `json:"bookingDateAndTime,omitempty"`
	TimeZone           *string `json:"timeZone,omitempty"`
}

func (r *UpdateDemoClassReq) Validate() error {
	if blank(r.Id) {
		return consts.Required("id")
	}
	if r.Status != nil {
		if _, err := lifecycle.ParseBookingStatus(*r.Status); err != nil {
			return err
		}
	}
	if r.TeacherId != nil && blank(*r.TeacherId) {
		return consts.ErrInvalidTeacher
	}
	if r.JoinLink != nil && *r.JoinLink != "" {
		if err := validateURL("joinLink", *r.JoinLink); err != nil {
			return err
		}
	}
	if r.BookingDateAndTime != nil {
		if _, err := ParseDate(*r.BookingDateAndTime); err != nil {
			return err
		}
	}
	if r.TimeZone != nil {
		return lifecycle.ValidateTimeZone(*r.TimeZone)
	}
	return nil
}

// DemoClass 对外的预约结构，studentId/teacherId 已填充
type DemoClass struct {
	Id                 string    `json:"_id"`
	StudentId          *Person   `json:"studentId"`
	TeacherId          *Person   `json:"teacherId,omitempty"`
	StudentName        string    `json:"studentName"`
	JoinLink           string    `json:"joinLink,omitempty"`
	FatherName         string    `json:"fatherName"`
	Grade              string    `json:"grade"`
	City               string    `json:"city"`
	Country            string    `json:"country"`
	Topic              string    `json:"topic"`
	Subject            string    `json:"subject"`
	BookingDateAndTime time.Time `json:"bookingDateAndTime"`
	Status             string    `json:"status"`
	TimeZone           string    `json:"timeZone,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type DemoClassResp struct {
	Success bool       `json:"success"`
	Data    *DemoClass `json:"data"`
}
