// Package http provides the chi handlers of the exhibits API. The surface
// is deliberately narrow: the three fixed exhibits the report renderer
// consumes, a health endpoint, and Prometheus metrics. Errors are rendered
// as RFC 7807 problem details.
package http
