// Package dataprocessing implements the core aggregation pipeline over the
// neighborhood crime snapshot: parsing the wide per-year-per-category
// table, normalizing missing yearly counts to zero, folding yearly columns
// into per-category decade totals, ranking neighborhoods by a chosen
// total, and extracting per-neighborhood time series.
//
// Every stage is a pure transformation: it derives a new value from its
// input and never mutates it, so stages are independently testable and a
// run is fully deterministic. Missing-cell zero-fill is the only locally
// recovered condition; it is a deliberate, documented approximation and a
// known source of downstream bias. Everything else fails fast with a typed
// error naming the offending key or column.
package dataprocessing
