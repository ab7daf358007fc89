package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	orgAccess = "org_access"

	orgOperationsTotal = "org_operations_total"

	operationLabel = "op"
)

var orgOperationsTotalMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: orgAccess,
		Name:      orgOperationsTotal,
		Help:      "number of completed org operations",
	},
	[]string{operationLabel},
)

// IncreaseOrgOperationsTotal records a successfully completed org operation.
func IncreaseOrgOperationsTotal(op string) {
	orgOperationsTotalMetric.With(prometheus.Labels{operationLabel: op}).Inc()
}

func init() {
	prometheus.MustRegister(orgOperationsTotalMetric)
}

type PrometheusMetricsHandler struct{}

func NewPrometheusMetricsHandler() *PrometheusMetricsHandler {
	return &PrometheusMetricsHandler{}
}

func (h *PrometheusMetricsHandler) Handler() http.Handler {
	return promhttp.Handler()
}
