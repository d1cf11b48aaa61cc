// Package api assembles the mock server: it synthesizes routes from parsed
// OpenAPI documents, layers the fixed stateful endpoint set on top, and
// applies CORS, authentication, logging, and metrics uniformly.
//
// Route registration is order-dependent: synthesized routes are registered
// first and win duplicate (method, pattern) collisions against the
// hand-declared stateful table. Duplicates are skipped with a debug
// diagnostic, never overwritten.
package api
