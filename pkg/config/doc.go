// Package config loads mock server configuration from MOCKAPS_* environment
// variables. Command-line flags in cmd/mockaps override individual fields.
//
// Supported variables:
//
//	MOCKAPS_MODE              stateless | stateful (default stateful)
//	MOCKAPS_HOST              bind host (default 0.0.0.0)
//	MOCKAPS_PORT              bind port (default 3000)
//	MOCKAPS_OPENAPI_DIR       spec directory (default ./specs)
//	MOCKAPS_STATE_FILE        optional state snapshot path
//	MOCKAPS_WATCH             re-synthesize routes on spec changes
//	MOCKAPS_LOG_LEVEL         logrus level name (default info)
//	MOCKAPS_READ_TIMEOUT      http server read timeout (default 15s)
//	MOCKAPS_WRITE_TIMEOUT     http server write timeout (default 15s)
//	MOCKAPS_SHUTDOWN_TIMEOUT  graceful shutdown window (default 30s)
package config
