package constants

// Log field name constants
const (
	LOG_REQUEST_ID = "request_id"
	LOG_TRACE_ID   = "trace_id"
	LOG_METHOD     = "method"
	LOG_URI        = "uri"
	LOG_REMOTE_ADR = "remote_addr"
	LOG_RESP_CODE  = "code"
	LOG_ERROR      = "error"
	LOG_REFERER    = "referer"
	LOG_USER_AGENT = "user_agent"
	LOG_ELAPSED    = "elapsed"
	LOG_USER_ID    = "user_id"
	LOG_PREDICTOR  = "predictor"
)

// HEADER_REQUEST_ID carries the caller's transaction id, one is generated when absent.
const HEADER_REQUEST_ID = "X-Global-Transaction-Id"
