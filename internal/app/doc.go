// Package app orchestrates the batch aggregation pipeline: load the
// snapshot once, transform it through the ordered pure stages, and emit
// every artifact at the end. The run is single-threaded and fail-fast; the
// first error aborts the run before any well-known output file is written,
// since partial crime statistics are worse than a clear failure. Each
// stage is wrapped in an OpenTelemetry span and recorded in the pipeline
// metrics.
package app
