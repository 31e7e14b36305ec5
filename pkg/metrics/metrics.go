package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "useradmin", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "useradmin", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// AdminCalls counts callable invocations by operation and canonical status (OK, PERMISSION_DENIED, ...).
	AdminCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "useradmin", Name: "admin_calls_total", Help: "Number of admin callable invocations by operation and status."},
		[]string{"operation", "status"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(AdminCalls)
}
