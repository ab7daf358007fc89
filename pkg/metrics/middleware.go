package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

var bucketsConfig = []float64{100, 300, 500, 1000, 5000}

const (
	RequestsCollectorName = "rpc_requests_total"
	LatencyCollectorName  = "rpc_request_duration_milliseconds"
)

// Middleware exposes prometheus metrics for the number of RPC calls and
// their latency, partitioned by status code and full method.
type Middleware struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMiddleware returns a new prometheus middleware for the provided
// service name.
func NewMiddleware(name string) *Middleware {
	var m Middleware
	m.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        RequestsCollectorName,
			Help:        "Number of RPC calls partitioned by status code and method.",
			ConstLabels: prometheus.Labels{"service": name},
		}, []string{"code", "method"})

	m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        LatencyCollectorName,
		Help:        "Time spent on the call partitioned by status code and method.",
		ConstLabels: prometheus.Labels{"service": name},
		Buckets:     bucketsConfig,
	}, []string{"code", "method"})

	return &m
}

func (m *Middleware) MustRegisterDefault() {
	prometheus.MustRegister(m.requests, m.latency)
}

// Unary returns the interceptor for unary calls.
func (m *Middleware) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.observe(info.FullMethod, err, start)
		return resp, err
	}
}

// Stream returns the interceptor for streaming calls.
func (m *Middleware) Stream() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		m.observe(info.FullMethod, err, start)
		return err
	}
}

func (m *Middleware) observe(method string, err error, start time.Time) {
	labels := prometheus.Labels{
		"code":   status.Code(err).String(),
		"method": method,
	}
	m.requests.With(labels).Inc()
	m.latency.With(labels).Observe(float64(time.Since(start).Milliseconds()))
}
