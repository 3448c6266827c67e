// Package metrics exposes Prometheus instrumentation for snapshot builds and
// HTTP serving.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder registers and updates the catalog metrics.
type Recorder struct {
	registry *prom.Registry

	snapshotBuildSeconds prom.Histogram
	snapshotDocuments    prom.Gauge
	snapshotProblems     prom.Gauge
	rebuildsTotal        *prom.CounterVec
	httpRequestsTotal    *prom.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prom.NewRegistry()}

	r.snapshotBuildSeconds = prom.NewHistogram(prom.HistogramOpts{
		Name:    "catalog_snapshot_build_seconds",
		Help:    "Duration of content snapshot builds.",
		Buckets: prom.DefBuckets,
	})
	r.snapshotDocuments = prom.NewGauge(prom.GaugeOpts{
		Name: "catalog_snapshot_documents",
		Help: "Documents in the active snapshot.",
	})
	r.snapshotProblems = prom.NewGauge(prom.GaugeOpts{
		Name: "catalog_snapshot_problems",
		Help: "Documents excluded from the active snapshot by validation.",
	})
	r.rebuildsTotal = prom.NewCounterVec(prom.CounterOpts{
		Name: "catalog_snapshot_rebuilds_total",
		Help: "Snapshot rebuilds by trigger.",
	}, []string{"trigger"})
	r.httpRequestsTotal = prom.NewCounterVec(prom.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "HTTP requests by status code class.",
	}, []string{"code"})

	r.registry.MustRegister(
		r.snapshotBuildSeconds,
		r.snapshotDocuments,
		r.snapshotProblems,
		r.rebuildsTotal,
		r.httpRequestsTotal,
	)
	return r
}

// ObserveSnapshotBuild records one completed snapshot build.
func (r *Recorder) ObserveSnapshotBuild(d time.Duration, documents, problems int) {
	r.snapshotBuildSeconds.Observe(d.Seconds())
	r.snapshotDocuments.Set(float64(documents))
	r.snapshotProblems.Set(float64(problems))
}

// IncRebuild counts a snapshot rebuild by trigger ("startup", "watch",
// "schedule").
func (r *Recorder) IncRebuild(trigger string) {
	r.rebuildsTotal.WithLabelValues(trigger).Inc()
}

// IncHTTPRequest counts one served request by status code.
func (r *Recorder) IncHTTPRequest(code int) {
	r.httpRequestsTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}

// Handler serves the /metrics endpoint for this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
