package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FullName      string             `bson:"fullName" json:"fullName"`
	Email         string             `bson:"email" json:"email"`
	Mobile        string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Role          string             `bson:"role" json:"role"`
	TeacherStatus string             `bson:"teacherStatus,omitempty" json:"teacherStatus,omitempty"`
	StudentStatus string             `bson:"studentStatus,omitempty" json:"studentStatus,omitempty"`
	// 教师资料
	Qualification  string     `bson:"qualification,omitempty" json:"qualification,omitempty"`
	Experiance     string     `bson:"experiance,omitempty" json:"experiance,omitempty"`
	ListOfSubjects []string   `bson:"listOfSubjects,omitempty" json:"listOfSubjects,omitempty"`
	ProfileImage   string     `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	CvUrl          string     `bson:"cvUrl,omitempty" json:"cvUrl,omitempty"`
	AboutTeacher   string     `bson:"aboutTeacher,omitempty" json:"aboutTeacher,omitempty"`
	IsVerified     bool       `bson:"isVerified" json:"isVerified"`
	DateOfBirth    *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Address        *Address   `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Query 列表查询条件，空字段不参与过滤
type Query struct {
	Role          string
	TeacherStatus string
	StudentStatus string
	IDs           []string
	// NewestFirst 按 createdAt 倒序，否则按 fullName 升序
	NewestFirst bool
}
