// Package report renders the descriptive report workbook from the
// pipeline's derived tables: an overview sheet with the full aggregated
// table, one sheet per ranked category, and a trend sheet with a line
// chart for the configured neighborhood and category. The renderer owns
// presentation only; it performs no numeric computation of its own.
package report
