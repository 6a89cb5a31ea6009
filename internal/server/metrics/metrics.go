// Package metrics — prometheus метрики сервера authflow.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Операции auth API (label operation).
const (
	OpSignup = "signup"
	OpLogin  = "login"
	OpMe     = "me"
)

// Исходы запросов (label outcome).
const (
	OutcomeSuccess            = "success"
	OutcomeInvalidInput       = "invalid_input"
	OutcomeDuplicate          = "duplicate"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeUnauthorized       = "unauthorized"
	OutcomeError              = "error"
)

// Metrics держит собственный registry, чтобы тесты и несколько экземпляров
// сервера не конфликтовали на prometheus.DefaultRegisterer.
type Metrics struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	hashDuration *prometheus.HistogramVec
}

// New создаёт и регистрирует метрики (плюс стандартные go/process коллекторы).
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "authflow_auth_requests_total",
			Help: "Total number of auth API requests by operation and outcome",
		}, []string{"operation", "outcome"}),
		hashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "authflow_password_hash_duration_seconds",
			Help:    "Histogram of password hash/verify latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.requests,
		m.hashDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry отдаёт registry (для тестов и дополнительных коллекторов).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRequest учитывает завершённый запрос к auth API.
func (m *Metrics) RecordRequest(operation, outcome string) {
	m.requests.WithLabelValues(operation, outcome).Inc()
}

// ObserveHash подходит как observer для crypto.HashPool.
func (m *Metrics) ObserveHash(operation string, d time.Duration) {
	m.hashDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// Handler — http.Handler для /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
