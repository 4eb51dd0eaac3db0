// Package telemetry exposes Prometheus metrics for the processing pipeline.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline counters and timers. Register once per process
// against a shared registerer.
type Metrics struct {
	DocumentsProcessed prometheus.Counter
	DocumentsFailed    prometheus.Counter
	ChunksProduced     prometheus.Counter
	PassagesRemoved    prometheus.Counter
	StageDuration      *prometheus.HistogramVec
}

// NewMetrics registers pipeline metrics on reg. A nil reg uses the default
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pubtator_documents_processed_total",
			Help: "Documents that completed the merge/consolidate/chunk pipeline.",
		}),
		DocumentsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pubtator_documents_failed_total",
			Help: "Documents rejected by the pipeline (structure mismatch, bad input).",
		}),
		ChunksProduced: factory.NewCounter(prometheus.CounterOpts{
			Name: "pubtator_chunks_produced_total",
			Help: "Chunks emitted across all documents.",
		}),
		PassagesRemoved: factory.NewCounter(prometheus.CounterOpts{
			Name: "pubtator_toc_passages_removed_total",
			Help: "TOC-like passages removed during consolidation.",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pubtator_stage_duration_seconds",
			Help:    "Wall time per pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
	}
}
