// Package openapi loads OpenAPI 3.0 specification documents and turns them
// into dispatch-ready route definitions.
//
// The package covers the subset of OpenAPI 3.0 the mock server needs: paths,
// operations, responses, media types, examples, and the shared components
// section. References ($ref) are intra-document only and are resolved lazily
// at response time; a dangling reference degrades to "no value" rather than
// failing the load.
//
// Typical usage:
//
//	docs, err := openapi.ParseDirectory("./specs", logger)
//	for _, d := range docs {
//		routes := openapi.ExtractRoutes(d.Doc)
//		// register routes with the dispatcher
//	}
package openapi
