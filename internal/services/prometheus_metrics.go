package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	entriesCreatedTotal       *prometheus.CounterVec
	entriesDeletedTotal       *prometheus.CounterVec
	reportsGeneratedTotal     *prometheus.CounterVec
	reportDuration            prometheus.Histogram
	exportsTotal              prometheus.Counter
	authenticationEventsTotal *prometheus.CounterVec
	ledgerSize                prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		entriesCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_entries_created_total",
				Help: "Total number of ledger entries created",
			},
			[]string{"kind"},
		),
		entriesDeletedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_entries_deleted_total",
				Help: "Total number of ledger entries deleted",
			},
			[]string{"kind"},
		),
		reportsGeneratedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cashflow_reports_generated_total",
				Help: "Total number of aggregation reports generated",
			},
			[]string{"view"},
		),
		reportDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cashflow_report_duration_milliseconds",
				Help:    "Report generation duration in milliseconds",
				Buckets: prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
		exportsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "cashflow_exports_total",
				Help: "Total number of CSV exports",
			},
		),
		authenticationEventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authentication_events_total",
				Help: "Total number of authentication events",
			},
			[]string{"event_type"},
		),
		ledgerSize: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "cashflow_ledger_entries",
				Help: "Current number of stored ledger entries",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "entry_created":
		if kind := tags["kind"]; kind != "" {
			m.entriesCreatedTotal.WithLabelValues(kind).Inc()
		}
	case "entry_deleted":
		if kind := tags["kind"]; kind != "" {
			m.entriesDeletedTotal.WithLabelValues(kind).Inc()
		}
	case "report_generated":
		if view := tags["view"]; view != "" {
			m.reportsGeneratedTotal.WithLabelValues(view).Inc()
		}
	case "export_generated":
		m.exportsTotal.Inc()
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "report_generation":
		m.reportDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "ledger_entries":
		m.ledgerSize.Set(value)
	}
}
