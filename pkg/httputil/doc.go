// Package httputil provides HTTP utilities for standardized request and
// response handling.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, payload)
//	httputil.WriteCreated(w, resource)
//
// Error responses, including the body shapes the mocked APS services use:
//
//	httputil.WriteAuthError(w, "Missing or malformed Authorization header")
//	httputil.WriteReason(w, http.StatusNotFound, "Webhook %s not found", id)
//	httputil.WriteJSONAPIError(w, http.StatusNotFound, "Not Found", detail)
//	httputil.WriteNotImplemented(w, operationID, method, path)
//
// # Request Parsing
//
//	var req CreateBucketRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//	vars := httputil.GetPathVars(r)
//
// # Middleware
//
// LoggingMiddleware and RecoveryMiddleware wrap the whole router; both log
// through an injected logrus logger.
//
// # Related Packages
//
//   - pkg/middleware: bearer-token authentication and CORS middleware
package httputil
