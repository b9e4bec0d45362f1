// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Export codec metrics.
	MetricEncodes          = "savekit_encodes_total"
	MetricDecodes          = "savekit_decodes_total"
	MetricDecodeFailures   = "savekit_decode_failures_total"
	MetricCompressionRatio = "savekit_compression_ratio"

	// Extractor metrics.
	MetricExtractions    = "savekit_extractions_total"
	MetricChunks         = "savekit_chunks_total"
	MetricExtractedBytes = "savekit_extracted_bytes_total"
	MetricSizeMismatches = "savekit_size_mismatches_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
