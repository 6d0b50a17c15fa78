// Package metrics defines the Prometheus metrics this service exports,
// adapted from common/metrics/metrics.go: same promauto-based construction,
// narrowed to gRPC + delivery-domain counters (no HTTP surface here, and no
// Stripe-specific gauges — this service has no payment domain).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// GRPCMetrics contains gRPC-related Prometheus metrics.
type GRPCMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// BusinessMetrics contains delivery-domain metrics.
type BusinessMetrics struct {
	DeliveriesCreated    prometheus.Counter
	RiderAssignments     prometheus.Counter
	DeliveryFeeCalcs     prometheus.Counter
	TransitionsRejected  prometheus.Counter
}

// NewGRPCMetrics creates gRPC metrics for serviceName.
func NewGRPCMetrics(serviceName string) *GRPCMetrics {
	return &GRPCMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: serviceName + "_grpc_requests_total",
				Help: "Total number of gRPC requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    serviceName + "_grpc_request_duration_seconds",
				Help:    "gRPC request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// NewBusinessMetrics creates delivery-domain metrics for serviceName.
func NewBusinessMetrics(serviceName string) *BusinessMetrics {
	return &BusinessMetrics{
		DeliveriesCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: serviceName + "_deliveries_created_total",
				Help: "Total number of delivery rows created from order.placed.event",
			},
		),
		RiderAssignments: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: serviceName + "_rider_assignments_total",
				Help: "Total number of successful ReportDeliveryStatus and ConfirmRiderAccept transitions",
			},
		),
		DeliveryFeeCalcs: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: serviceName + "_delivery_fee_calculations_total",
				Help: "Total number of delivery fees successfully calculated by GetDeliveryFee",
			},
		),
		TransitionsRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: serviceName + "_transitions_rejected_total",
				Help: "Total number of state-machine transitions rejected as redundant or backwards",
			},
		),
	}
}

// RecordGRPCRequest records a gRPC request metric.
func (m *GRPCMetrics) RecordGRPCRequest(method, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
