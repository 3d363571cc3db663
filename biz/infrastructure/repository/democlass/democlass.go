package democlass

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DemoClass struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID          primitive.ObjectID `bson:"studentId" json:"studentId"`
	StudentName        string             `bson:"studentName" json:"studentName"`
	TeacherID          primitive.ObjectID `bson:"teacherId,omitempty" json:"teacherId,omitempty"`
	JoinLink           string             `bson:"joinLink,omitempty" json:"joinLink,omitempty"`
	BookingDateAndTime time.Time          `bson:"bookingDateAndTime" json:"bookingDateAndTime"`
	TimeZone           string             `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	Subject            string             `bson:"subject" json:"subject"`
	Topic              string             `bson:"topic" json:"topic"`
	Grade              string             `bson:"grade" json:"grade"`
	City               string             `bson:"city" json:"city"`
	Country            string             `bson:"country" json:"country"`
	FatherName         string             `bson:"fatherName" json:"fatherName"`
	Status             string             `bson:"status" json:"status"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Query 空字段不过滤；默认按 bookingDateAndTime 倒序
type Query struct {
	StudentID string
	TeacherID string
	Status    string
	Ascending bool
}

// Update 管理员的局部更新，nil 字段保持原值
type Update struct {
	TeacherID          *primitive.ObjectID
	JoinLink           *string
	BookingDateAndTime *time.Time
	TimeZone           *string
	Status             *string
	// ExpectStatus 非空时仅在当前状态等于它时写入
	ExpectStatus string
}

func (u *Update) Empty() bool {
	return u.TeacherID == nil && u.JoinLink == nil && u.BookingDateAndTime == nil && u.TimeZone == nil && u.Status == nil
}
