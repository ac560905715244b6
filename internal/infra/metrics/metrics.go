// Package metrics defines and registers the Prometheus metrics of the member service.
// All collectors are registered with the default registry at package init and are
// served by the API at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "member"

// Operation labels.
const (
	OperationLogin    = "login"
	OperationRegister = "register"
	OperationUpdate   = "update"
)

// OutcomeSuccess labels a successful operation. Business failures use their error code
// (e.g. "INVALID_CREDENTIALS") and infrastructure faults use OutcomeError.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// AccountOperationsTotal counts account operations.
// Labels:
//   - operation: login, register or update
//   - outcome: success, a business error code, or error
var AccountOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_operations_total",
		Help:      "Total number of account operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// AccountOperationDuration measures how long an account operation takes end-to-end.
// Label:
//   - operation: login, register or update
var AccountOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "account_operation_duration_seconds",
		Help:      "Duration of account operations including store access.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ObserveAccountOperation records one finished operation.
func ObserveAccountOperation(operation, outcome string, started time.Time) {
	AccountOperationsTotal.WithLabelValues(operation, outcome).Inc()
	AccountOperationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
