// Package exporter writes the pipeline's derived tables to disk: the
// processed snapshot cache (the input row shape plus Total_<Category>
// columns), per-category ranking tables, the time-series extract, and JSON
// envelopes for the exhibits server. CSV files carry a UTF-8 BOM so
// spreadsheet tools open them correctly. Writers fail with storage errors
// and never leave a partially written well-known file behind a successful
// return.
package exporter
