package lifecycle

import (
	"errors"
	"testing"

	"tuition-show/biz/infrastructure/consts"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingCancelled, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelled, true},
		{BookingConfirmed, BookingPending, false},
		{BookingCompleted, BookingPending, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCompleted, BookingCompleted, true},
		{BookingPending, BookingPending, true},
		{BookingStatus("archived"), BookingPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransition(t *testing.T) {
	if _, err := Transition(BookingPending, "archived"); !errors.Is(err, consts.ErrInvalidStatus) {
		t.Fatalf("unknown status: got %v", err)
	}
	if _, err := Transition(BookingCompleted, "pending"); !errors.Is(err, consts.ErrIllegalTransition) {
		t.Fatalf("completed -> pending: got %v", err)
	}
	next, err := Transition(BookingPending, "confirmed")
	if err != nil || next != BookingConfirmed {
		t.Fatalf("pending -> confirmed: got %s, %v", next, err)
	}
	if !BookingCancelled.Terminal() || BookingConfirmed.Terminal() {
		t.Fatal("terminal states mismatch")
	}
}

func TestParseApprovalStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected"} {
		if _, err := ParseApprovalStatus(s); err != nil {
			t.Errorf("%s: %v", s, err)
		}
	}
	if _, err := ParseApprovalStatus("banned"); !errors.Is(err, consts.ErrInvalidStatus) {
		t.Errorf("banned: got %v", err)
	}
	if OrPending("") != "pending" || OrPending("approved") != "approved" {
		t.Error("OrPending")
	}
}

func TestValidateTimeZone(t *testing.T) {
	if err := ValidateTimeZone("Asia/Karachi"); err != nil {
		t.Fatal(err)
	}
	if err := ValidateTimeZone(""); err != nil {
		t.Fatal(err)
	}
	if err := ValidateTimeZone("Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}
