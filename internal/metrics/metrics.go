package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the server exposes on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	Spins        prometheus.Counter
	Wins         *prometheus.CounterVec
	Segments     prometheus.Gauge
	HTTPRequests *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		Spins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "spinwheel",
			Name:      "spins_total",
			Help:      "Number of spins recorded since start.",
		}),
		Wins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spinwheel",
			Name:      "wins_total",
			Help:      "Server-side spin results by the winner's position on the wheel.",
		}, []string{"position"}),
		Segments: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spinwheel",
			Name:      "segments",
			Help:      "Number of segments currently on the wheel.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spinwheel",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		m.Spins,
		m.Wins,
		m.Segments,
		m.HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveWin counts a win at position, the winner's index in wheel order.
// Positions are bounded by the segment limit, unlike labels.
func (m *Metrics) ObserveWin(position int) {
	m.Wins.WithLabelValues(strconv.Itoa(position)).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
