package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RowsLoaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bookings", Name: "rows_loaded_total", Help: "Booking rows loaded."},
		[]string{"source"},
	)
	UnmappedRows = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bookings", Name: "unmapped_rows_total", Help: "Rows whose category value had no mapping."},
		[]string{"column"},
	)
	ChartsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bookings", Name: "charts_rendered_total", Help: "Chart artifacts written."},
		[]string{"chart", "status"},
	)
	StageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookings", Name: "stage_duration_seconds",
			Help:    "Pipeline stage duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	LastRunSuccess = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "bookings", Name: "last_run_success_timestamp_seconds", Help: "Unix time of the last successful run."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(RowsLoaded, UnmappedRows, ChartsRendered, StageLatency, LastRunSuccess)
	return reg
}

// WriteTextfile dumps reg in the node-exporter textfile collector format.
func WriteTextfile(path string, reg *prometheus.Registry) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

func ObserveLoad(source string, rows int) {
	RowsLoaded.WithLabelValues(source).Add(float64(rows))
}

func ObserveUnmapped(column string, rows int) {
	UnmappedRows.WithLabelValues(column).Add(float64(rows))
}

func ObserveChart(chart string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ChartsRendered.WithLabelValues(chart, status).Inc()
}

func ObserveStage(stage string, dur time.Duration) {
	StageLatency.WithLabelValues(stage).Observe(dur.Seconds())
}

func MarkSuccess(now time.Time) { LastRunSuccess.Set(float64(now.Unix())) }
