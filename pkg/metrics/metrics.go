package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	BookingSteps        *prometheus.CounterVec
	VerificationResults *prometheus.CounterVec
	UpstreamErrors      *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном registry
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_steps_total",
			Help:        "Booking transaction steps by outcome",
			ConstLabels: constLabels,
		}, []string{"step", "status"}),

		VerificationResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "verification_results_total",
			Help:        "SMS code verification attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		UpstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_errors_total",
			Help:        "Failed calls to upstream services",
			ConstLabels: constLabels,
		}, []string{"upstream", "operation"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingSteps,
		m.VerificationResults,
		m.UpstreamErrors,
	)

	return m
}

// ObserveBookingStep учитывает результат шага транзакции бронирования.
// Безопасно вызывать на nil
func (m *Metrics) ObserveBookingStep(step, status string) {
	if m == nil {
		return
	}
	m.BookingSteps.WithLabelValues(step, status).Inc()
}

// ObserveVerification учитывает результат проверки кода
func (m *Metrics) ObserveVerification(outcome string) {
	if m == nil {
		return
	}
	m.VerificationResults.WithLabelValues(outcome).Inc()
}

// ObserveUpstreamError учитывает неудачный вызов внешнего сервиса
func (m *Metrics) ObserveUpstreamError(upstream, operation string) {
	if m == nil {
		return
	}
	m.UpstreamErrors.WithLabelValues(upstream, operation).Inc()
}
