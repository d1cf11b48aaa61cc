// Package middleware provides the authentication gate and CORS policy
// applied uniformly to every route.
//
// The auth middleware enforces the Bearer token contract: the token
// endpoint is exempt, every other request needs a valid token. In stateful
// mode tokens are checked against the token store; in stateless mode any
// bearer token passes. Failures produce the APS 401 body
// {"developerMessage": ..., "errorCode": "AUTH-001"}.
package middleware
