package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// 体验课事件路由键
const (
	BookingCreated = "booking.created"
	BookingDeleted = "booking.deleted"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	StudentID  string    `json:"studentId"`
	TeacherID  string    `json:"teacherId,omitempty"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusChanged 状态变化的路由键，如 booking.confirmed
func StatusChanged(status string) string {
	return "booking." + status
}

func NewBookingEvent(typ, bookingID, studentID, teacherID, status string) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		BookingID:  bookingID,
		StudentID:  studentID,
		TeacherID:  teacherID,
		Status:     status,
		OccurredAt: time.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e *BookingEvent) error
}

// NopPublisher 未配置 Broker.URL 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *BookingEvent) error { return nil }
