package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserve(t *testing.T) {
	m := NewMetrics()
	m.ObserveDelivery("otp", nil)
	m.ObserveDelivery("otp", errors.New("boom"))
	m.ObserveDelivery("otp", errors.New("boom"))
	m.ObserveBooking("booking.created")

	if v := testutil.ToFloat64(m.OutboxDeliveries.WithLabelValues("otp", "failed")); v != 2 {
		t.Fatalf("failed deliveries = %v", v)
	}
	if v := testutil.ToFloat64(m.OutboxDeliveries.WithLabelValues("otp", "sent")); v != 1 {
		t.Fatalf("sent deliveries = %v", v)
	}
	if v := testutil.ToFloat64(m.BookingTransitions.WithLabelValues("booking.created")); v != 1 {
		t.Fatalf("booking events = %v", v)
	}
}
