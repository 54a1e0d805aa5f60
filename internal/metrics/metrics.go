// Package metrics defines the Prometheus collectors for the converter app and
// the worker supervisor. Collectors are process-local: each worker exports its
// own request counters, the supervisor exports worker lifecycle and resource
// gauges.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ConversionsTotal counts successful conversions by direction.
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "b32d_conversions_total",
		Help: "Successful conversions served, by direction (encode or decode).",
	}, []string{"direction"})

	// RequestErrorsTotal counts requests rejected as invalid input.
	RequestErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "b32d_request_errors_total",
		Help: "Requests that failed input validation.",
	})

	// WorkersRunning tracks live worker processes under the supervisor.
	WorkersRunning = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "b32d_workers_running",
		Help: "Worker processes currently running.",
	})

	// WorkerExitsTotal counts worker exits by outcome.
	WorkerExitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "b32d_worker_exits_total",
		Help: "Worker process exits, by outcome (ok or error).",
	}, []string{"outcome"})

	// WorkerResidentBytes reports sampled RSS per worker.
	WorkerResidentBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "b32d_worker_resident_bytes",
		Help: "Resident memory of each worker process, sampled periodically.",
	}, []string{"worker"})

	// WorkerCPUPercent reports sampled CPU usage per worker.
	WorkerCPUPercent = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "b32d_worker_cpu_percent",
		Help: "CPU usage of each worker process, sampled periodically.",
	}, []string{"worker"})
)

// Handler returns the scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
