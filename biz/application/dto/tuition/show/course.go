package show

import (
	"time"

	"tuition-show/biz/infrastructure/consts"
)

type CreateCourseReq struct {
	StudentId        string  `json:"studentId"`
	TeacherId        string  `json:"teacherId,omitempty"`
	Subject          string  `json:"subject"`
	RemainingClasses int64   `json:"remainingClasses"`
	PricePerClass    float64 `json:"pricePerClass"`
}

func (r *CreateCourseReq) Validate() error {
	if blank(r.StudentId) {
		return consts.Required("studentId")
	}
	if blank(r.Subject) {
		return consts.Required("subject")
	}
	if r.RemainingClasses < 0 {
		return consts.Validation("remainingClasses must not be negative")
	}
	if r.PricePerClass < 0 {
		return consts.Validation("pricePerClass must not be negative")
	}
	return nil
}

type Course struct {
	Id               string    `json:"_id"`
	StudentId        *Person   `json:"studentId"`
	TeacherId        *Person   `json:"teacherId,omitempty"`
	Subject          string    `json:"subject"`
	RemainingClasses int64     `json:"remainingClasses"`
	PricePerClass    float64   `json:"pricePerClass"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type CourseResp struct {
	Success bool    `json:"success"`
	Data    *Course `json:"data"`
}

type CourseIdReq struct {
	CourseId string `path:"courseId"`
}

type DeleteMessageReq struct {
	CourseId  string `path:"courseId"`
	MessageId string `query:"messageId"`
}

func (r *DeleteMessageReq) Validate() error {
	if blank(r.MessageId) {
		return consts.Validation("Message ID is required")
	}
	return nil
}

type SendMessageReq struct {
	Message        string `json:"message,omitempty"`
	AttachmentUrl  string `json:"attachmentUrl,omitempty"`
	AttachmentType string `json:"attachmentType,omitempty"`
}

func (r *SendMessageReq) Validate() error {
	if blank(r.Message) && blank(r.AttachmentUrl) {
		return consts.ErrEmptyMessage
	}
	if r.AttachmentUrl != "" {
		return validateURL("attachmentUrl", r.AttachmentUrl)
	}
	return nil
}

type CourseMessage struct {
	Id             string    `json:"_id"`
	CourseId       string    `json:"courseId"`
	SenderId       *Person   `json:"senderId"`
	Message        string    `json:"message"`
	AttachmentUrl  string    `json:"attachmentUrl,omitempty"`
	AttachmentType string    `json:"attachmentType,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ListMessagesResp struct {
	Success  bool             `json:"success"`
	Messages []*CourseMessage `json:"messages"`
}

type SendMessageResp struct {
	Success bool           `json:"success"`
	Message *CourseMessage `json:"message"`
}
