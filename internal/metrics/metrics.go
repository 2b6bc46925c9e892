package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mermaidgen"

// Registry holds every collector exposed at /metrics.
var Registry = prometheus.NewRegistry()

var (
	upstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Generation calls to the upstream completion endpoint by outcome",
		},
		[]string{"outcome"},
	)

	upstreamLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Latency of upstream completion calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	renderTriggers = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_triggers_total",
			Help:      "Debounced render triggers fired",
		},
	)

	diagramOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagram_operations_total",
			Help:      "Persistence gateway operations by op and outcome",
		},
		[]string{"op", "outcome"},
	)

	activeWorkspaces = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "editor_workspaces",
			Help:      "Editor workspaces currently held in memory",
		},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		upstreamCalls,
		upstreamLatency,
		renderTriggers,
		diagramOps,
		activeWorkspaces,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordUpstreamCall records an upstream generation call
func RecordUpstreamCall(duration time.Duration, outcome string) {
	upstreamCalls.WithLabelValues(outcome).Inc()
	upstreamLatency.Observe(duration.Seconds())
}

func RecordRenderTrigger() {
	renderTriggers.Inc()
}

func RecordDiagramOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	diagramOps.WithLabelValues(op, outcome).Inc()
}

func SetWorkspaces(n int) {
	activeWorkspaces.Set(float64(n))
}
