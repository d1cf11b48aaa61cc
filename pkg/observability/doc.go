// Package observability provides Prometheus metrics for the mock server's
// HTTP surface: request counts and latency labeled by method, route
// pattern, and status code.
package observability
