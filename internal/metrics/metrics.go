// Package metrics собирает prometheus-метрики исходящих запросов к REST API.
// RoundTripper оборачивает http.RoundTripper клиента и считает количество
// и длительность запросов в разрезе метода, пути и кода ответа.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_client_requests_total",
		Help: "Total number of outgoing API requests.",
	}, []string{"method", "path", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "admin_client_request_duration_seconds",
		Help:    "Duration of outgoing API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// RoundTripper собирает метрики вокруг вложенного транспорта.
type RoundTripper struct {
	next http.RoundTripper
}

// NewRoundTripper оборачивает next в сбор метрик.
// Если next равен nil, используется http.DefaultTransport.
func NewRoundTripper(next http.RoundTripper) *RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &RoundTripper{next: next}
}

func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := rt.next.RoundTrip(req)
	requestDuration.WithLabelValues(req.Method, req.URL.Path).Observe(time.Since(start).Seconds())

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	requestsTotal.WithLabelValues(req.Method, req.URL.Path, code).Inc()
	return resp, err
}

// Handler возвращает HTTP-обработчик для экспорта метрик.
func Handler() http.Handler {
	return promhttp.Handler()
}
