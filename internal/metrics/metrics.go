package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "energy_loader"

// Recorder collects the metrics of a loader run on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	RowsLoaded      *prometheus.CounterVec
	RunFailures     *prometheus.CounterVec
	LastRunSuccess  prometheus.Gauge
	LastRunDuration prometheus.Gauge
	StageDuration   *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		RowsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rows_loaded_total",
				Help:      "Rows written per table",
			},
			[]string{"table"},
		),
		RunFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "run_failures_total",
				Help:      "Failed runs by pipeline stage",
			},
			[]string{"stage"}, // "carbon", "production", "load"
		),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run loaded both tables, 0 otherwise",
		}),
		LastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last run",
		}),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"stage"},
		),
	}

	r.registry.MustRegister(r.RowsLoaded, r.RunFailures, r.LastRunSuccess, r.LastRunDuration, r.StageDuration)
	return r
}

func (r *Recorder) ObserveStage(stage string, started time.Time) {
	r.StageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

func (r *Recorder) RunSucceeded(carbonRows, productionRows int, took time.Duration) {
	r.RowsLoaded.WithLabelValues("carbon").Add(float64(carbonRows))
	r.RowsLoaded.WithLabelValues("production").Add(float64(productionRows))
	r.LastRunSuccess.Set(1)
	r.LastRunDuration.Set(took.Seconds())
}

func (r *Recorder) RunFailed(stage string, took time.Duration) {
	r.RunFailures.WithLabelValues(stage).Inc()
	r.LastRunSuccess.Set(0)
	r.LastRunDuration.Set(took.Seconds())
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the registry for the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
