package messages

import (
	"fmt"
	"strings"

	"github.com/creativepathway/ml-service/internal/constants"
)

// This package provides all the error messages that should be reported to the user.
// Note that we add a comment with the message parameters so that it is possible
// to see the parameters in the IDE when creating an error message.
var (
	// Request errors

	// InvalidJSONRequest The request JSON is invalid: '{{.Error}}'. Please check the request and try again.
	InvalidJSONRequest = createMessage(
		constants.HTTPCodeBadRequest,
		constants.MESSAGE_CODE_INVALID_JSON_REQUEST,
		"The request JSON is invalid: '{{.Error}}'. Please check the request and try again.",
	)

	// RequestBodyRequired The request body is required for the API {{.Api}}.
	RequestBodyRequired = createMessage(
		constants.HTTPCodeBadRequest,
		constants.MESSAGE_CODE_REQUEST_BODY_REQUIRED,
		"The request body is required for the API {{.Api}}.",
	)

	// RequestBodyTooLarge The request body exceeds the limit of {{.Limit}} bytes.
	RequestBodyTooLarge = createMessage(
		constants.HTTPCodeRequestTooLarge,
		constants.MESSAGE_CODE_REQUEST_BODY_TOO_LARGE,
		"The request body exceeds the limit of {{.Limit}} bytes.",
	)

	// RequestValidationFailed The request validation failed: '{{.Error}}'. Please check the request and try again.
	RequestValidationFailed = createMessage(
		constants.HTTPCodeBadRequest,
		constants.MESSAGE_CODE_REQUEST_VALIDATION_FAILED,
		"The request validation failed: '{{.Error}}'. Please check the request and try again.",
	)

	// UnsupportedMediaType The content type '{{.ContentType}}' is not supported, expected 'application/json'.
	UnsupportedMediaType = createMessage(
		constants.HTTPCodeUnsupportedMediaType,
		constants.MESSAGE_CODE_UNSUPPORTED_MEDIA_TYPE,
		"The content type '{{.ContentType}}' is not supported, expected 'application/json'.",
	)

	// Routing errors

	// RouteNotFound The API {{.Api}} was not found.
	RouteNotFound = createMessage(
		constants.HTTPCodeNotFound,
		constants.MESSAGE_CODE_ROUTE_NOT_FOUND,
		"The API {{.Api}} was not found.",
	)

	// MethodNotAllowed The HTTP method {{.Method}} is not allowed for the API {{.Api}}.
	MethodNotAllowed = createMessage(
		constants.HTTPCodeMethodNotAllowed,
		constants.MESSAGE_CODE_METHOD_NOT_ALLOWED,
		"The HTTP method {{.Method}} is not allowed for the API {{.Api}}.",
	)

	// RateLimitExceeded The rate limit for the API {{.Api}} was exceeded, retry after {{.RetryAfter}} seconds.
	RateLimitExceeded = createMessage(
		constants.HTTPCodeTooManyRequests,
		constants.MESSAGE_CODE_RATE_LIMIT_EXCEEDED,
		"The rate limit for the API {{.Api}} was exceeded, retry after {{.RetryAfter}} seconds.",
	)

	// Prediction errors

	// PredictionFailed The {{.Predictor}} predictor failed: '{{.Error}}'.
	PredictionFailed = createMessage(
		constants.HTTPCodeInternalServerError,
		constants.MESSAGE_CODE_PREDICTION_FAILED,
		"The {{.Predictor}} predictor failed: '{{.Error}}'.",
	)

	// Configurastion related errors

	// ConfigurationFailed The service startup failed: '{{.Error}}'.
	ConfigurationFailed = createMessage(
		constants.HTTPCodeInternalServerError,
		constants.MESSAGE_CODE_CONFIGURATION_FAILED,
		"The service startup failed: '{{.Error}}'.",
	)

	// InternalServerError An internal server error occurred: '{{.Error}}'.
	InternalServerError = createMessage(
		constants.HTTPCodeInternalServerError,
		constants.MESSAGE_CODE_INTERNAL_SERVER_ERROR,
		"An internal server error occurred: '{{.Error}}'.",
	)

	// UnknownError An unknown error occurred: '{{.Error}}'. This is a fallback error if the error is not a service error.
	UnknownError = createMessage(
		constants.HTTPCodeInternalServerError,
		constants.MESSAGE_CODE_UNKNOWN_ERROR,
		"An unknown error occurred: {{.Error}}.",
	)
)

type MessageCode struct {
	status int
	code   string
	one    string
}

func (m *MessageCode) GetCode() int {
	return m.status
}

// GetMessageCode returns the stable identifier clients can switch on.
func (m *MessageCode) GetMessageCode() string {
	return m.code
}

func (m *MessageCode) GetMessage() string {
	return m.one
}

func createMessage(status int, code string, one string) *MessageCode {
	return &MessageCode{
		status,
		code,
		one,
	}
}

func GetErrorMesssage(messageCode *MessageCode, messageParams ...any) string {
	msg := messageCode.GetMessage()
	for i := 0; i < len(messageParams); i += 2 {
		param := messageParams[i]
		var paramValue any
		if i+1 < len(messageParams) {
			paramValue = messageParams[i+1]
		} else {
			paramValue = "NOT_DEFINED" // this is a placeholder for a missing parameter value - if you see this value then the code needs to be fixed
		}
		msg = strings.ReplaceAll(msg, fmt.Sprintf("{{.%v}}", param), fmt.Sprintf("%v", paramValue))
	}
	return msg
}
