package metrics

import (
	"github.com/nationalcolors/nationalcolors/internal"
	"github.com/prometheus/client_golang/prometheus"
)

const scraperSub string = "scraper"

// ScraperMetrics are collected once per run and written out as a textfile for
// the node exporter, the scraper is not a long running process.
type ScraperMetrics struct {
	Registry *prometheus.Registry

	TablesSeen       prometheus.Counter
	TablesSkipped    prometheus.Counter
	RowsSeen         prometheus.Counter
	RowsStored       prometheus.Counter
	RowsUnresolved   prometheus.Counter
	StageDuration    *prometheus.GaugeVec
	LastSuccessfulAt prometheus.Gauge
}

func NewScraperMetrics() *ScraperMetrics {
	m := &ScraperMetrics{
		Registry: prometheus.NewRegistry(),
		TablesSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "tables_total",
			Help:      "Data tables found on the source page",
		}),
		TablesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "tables_skipped_total",
			Help:      "Organisation tables skipped",
		}),
		RowsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "rows_total",
			Help:      "Country rows read from data tables",
		}),
		RowsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "rows_stored_total",
			Help:      "Country rows resolved to an ISO code and stored",
		}),
		RowsUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "rows_unresolved_total",
			Help:      "Country rows dropped because no ISO code was found",
		}),
		StageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "stage_duration_seconds",
			Help:      "Wall time of each pipeline stage in the last run",
		}, []string{"stage"}),
		LastSuccessfulAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: scraperSub,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that wrote its outputs",
		}),
	}

	m.Registry.MustRegister(
		m.TablesSeen,
		m.TablesSkipped,
		m.RowsSeen,
		m.RowsStored,
		m.RowsUnresolved,
		m.StageDuration,
		m.LastSuccessfulAt,
	)

	return m
}

// Observe records a run report. A zero CompletedAt means the run failed and
// the last success timestamp is left alone.
func (m *ScraperMetrics) Observe(r *internal.RunReport) {
	m.TablesSeen.Add(float64(r.Stats.Tables))
	m.TablesSkipped.Add(float64(r.Stats.SkippedTables))
	m.RowsSeen.Add(float64(r.Stats.Rows))
	m.RowsStored.Add(float64(r.Stats.Stored))
	m.RowsUnresolved.Add(float64(r.Stats.Unresolved))

	for stage, d := range r.Stages {
		m.StageDuration.WithLabelValues(stage).Set(d.Seconds())
	}

	if !r.CompletedAt.IsZero() {
		m.LastSuccessfulAt.Set(float64(r.CompletedAt.Unix()))
	}
}

// WriteTextfile writes the current values in the Prometheus text format.
func (m *ScraperMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
