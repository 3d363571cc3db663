package lifecycle

import (
	"time"
	_ "time/tzdata"

	"tuition-show/biz/infrastructure/consts"
)

// BookingStatus 体验课状态
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

// 允许的状态流转，completed 与 cancelled 为终态
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// ParseBookingStatus 未知状态返回 ErrInvalidStatus
func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(s)
	if !st.Valid() {
		return "", consts.ErrInvalidStatus
	}
	return st, nil
}

// CanTransition 同状态视为幂等
func CanTransition(from, to BookingStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition 校验并返回目标状态
func Transition(from BookingStatus, to string) (BookingStatus, error) {
	next, err := ParseBookingStatus(to)
	if err != nil {
		return "", err
	}
	if !CanTransition(from, next) {
		return "", consts.ErrIllegalTransition
	}
	return next, nil
}

// ValidateTimeZone 时区必须为 IANA 名称
func ValidateTimeZone(tz string) error {
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil || tz == "Local" {
		return consts.Validation("Invalid timeZone: %s", tz)
	}
	return nil
}
