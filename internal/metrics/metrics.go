// Package metrics defines Prometheus metrics for capec-rel.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "capecrel_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capecrel_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capecrel_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capecrel_queries_total",
			Help: "Relationship queries by operation",
		},
		[]string{"op"},
	)

	IngestRejectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capecrel_ingest_rejects_total",
			Help: "Cells and rows dropped or rejected during ingestion",
		},
		[]string{"reason"},
	)

	NodeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "capecrel_nodes_total",
			Help: "Total node count",
		},
	)

	EdgeCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "capecrel_edges_total",
			Help: "Total edge count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		QueriesTotal, IngestRejectsTotal,
		NodeCount, EdgeCount,
	)
}
