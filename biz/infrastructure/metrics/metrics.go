package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "tuition"

// Metrics 业务指标，Registry 同时交给 hertz 的 prometheus tracer 暴露
type Metrics struct {
	Registry           *prometheus.Registry
	OutboxDeliveries   *prometheus.CounterVec
	BookingTransitions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		OutboxDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "deliveries_total",
			Help:      "Outbox email delivery attempts by kind and result.",
		}, []string{"kind", "result"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "transitions_total",
			Help:      "Demo class lifecycle events by type.",
		}, []string{"event"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OutboxDeliveries,
		m.BookingTransitions,
	)
	return m
}

func (m *Metrics) ObserveDelivery(kind string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	m.OutboxDeliveries.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveBooking(event string) {
	m.BookingTransitions.WithLabelValues(event).Inc()
}
