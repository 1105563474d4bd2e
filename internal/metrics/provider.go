package metrics

import "github.com/prometheus/client_golang/prometheus"

// Title generation, vector store and pipeline metrics.
var (
	TitleGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "title_generations_total",
			Help:      "Title generations by outcome",
		},
		[]string{"outcome"}, // "generated" / "fallback" / "skipped"
	)

	TitleGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "title_generation_duration_seconds",
			Help:      "Chat completion duration for title generation",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
	)

	VectorStoreOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vector_store_operations_total",
			Help:      "Vector store operations by status",
		},
		[]string{"op", "status"},
	)

	VectorStoreOpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "vector_store_operation_duration_seconds",
			Help:      "Vector store operation duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"op"},
	)

	PipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Data processing pipeline runs by status",
		},
		[]string{"status"},
	)
)
