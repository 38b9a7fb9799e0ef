// Package metrics — счётчики Prometheus для отказов аутентификации и HTTP-запросов.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Причины отказа аутентификации (значения метки reason).
const (
	ReasonMissingToken = "missing_token"
	ReasonInvalidToken = "invalid_token"
	ReasonBadLogin     = "bad_credentials"
	ReasonForbidden    = "forbidden"
)

// Metrics держит собственный реестр, чтобы тесты не делили глобальное состояние.
type Metrics struct {
	registry     *prometheus.Registry
	authFailures *prometheus.CounterVec
	requests     *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "auth_failures_total",
			Help:      "Rejected authentication and authorization attempts by reason",
		}, []string{"reason"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vault",
			Name:      "http_requests_total",
			Help:      "Handled HTTP requests by method and status",
		}, []string{"method", "status"}),
	}
	m.registry.MustRegister(m.authFailures, m.requests)
	return m
}

// AuthFailure увеличивает счётчик отказов. nil-получатель допустим.
func (m *Metrics) AuthFailure(reason string) {
	if m == nil {
		return
	}
	m.authFailures.WithLabelValues(reason).Inc()
}

// Request учитывает обработанный запрос.
func (m *Metrics) Request(method string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler отдаёт метрики в формате экспозиции Prometheus. Сжатие делает WithGzip.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

// Registry нужен тестам для чтения значений.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
