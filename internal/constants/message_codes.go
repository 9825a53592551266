package constants

const (
	MESSAGE_CODE_INVALID_JSON_REQUEST      = "invalid_json_request"
	MESSAGE_CODE_REQUEST_BODY_REQUIRED     = "request_body_required"
	MESSAGE_CODE_REQUEST_BODY_TOO_LARGE    = "request_body_too_large"
	MESSAGE_CODE_REQUEST_VALIDATION_FAILED = "request_validation_failed"
	MESSAGE_CODE_UNSUPPORTED_MEDIA_TYPE    = "unsupported_media_type"
	MESSAGE_CODE_ROUTE_NOT_FOUND           = "route_not_found"
	MESSAGE_CODE_METHOD_NOT_ALLOWED        = "method_not_allowed"
	MESSAGE_CODE_RATE_LIMIT_EXCEEDED       = "rate_limit_exceeded"
	MESSAGE_CODE_PREDICTION_FAILED         = "prediction_failed"
	MESSAGE_CODE_CONFIGURATION_FAILED      = "configuration_failed"
	MESSAGE_CODE_INTERNAL_SERVER_ERROR     = "internal_server_error"
	MESSAGE_CODE_UNKNOWN_ERROR             = "unknown_error"
)
