package constants

const (
	HTTPCodeOK                   = 200
	HTTPCodeNoContent            = 204
	HTTPCodeBadRequest           = 400
	HTTPCodeNotFound             = 404
	HTTPCodeMethodNotAllowed     = 405
	HTTPCodeRequestTooLarge      = 413
	HTTPCodeUnsupportedMediaType = 415
	HTTPCodeTooManyRequests      = 429
	HTTPCodeInternalServerError  = 500
)
