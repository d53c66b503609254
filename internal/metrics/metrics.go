package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Increments      prometheus.Counter
	RateLimited     prometheus.Counter
	StoreLatency    *prometheus.HistogramVec

	reg *prometheus.Registry
}

// NewRegistry creates the service collectors on a private Prometheus
// registry so repeated construction (tests) cannot collide.
func NewRegistry() *Registry {
	r := &Registry{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "banana_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "banana_http_request_seconds",
			Help:    "HTTP request latency in seconds by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		Increments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "banana_increments_total",
			Help: "Successful score increments",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "banana_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}),
		StoreLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "banana_store_op_seconds",
			Help:    "Score store operation latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		reg: prometheus.NewRegistry(),
	}
	r.reg.MustRegister(r.Requests, r.RequestDuration, r.Increments, r.RateLimited, r.StoreLatency)
	return r
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
