package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
)

// DecodeRequest reads the JSON body of r into v. The body must be sent as
// application/json or an application/*+json type and must not be empty.
func DecodeRequest(validate *validator.Validate, executionContext *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, v any) error {
	contentType := r.Header("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !isJSONMediaType(mediaType) {
		return serviceerrors.NewServiceError(messages.UnsupportedMediaType, "ContentType", contentType)
	}

	body, err := r.BodyAsBytes()
	if err != nil {
		if errors.Is(err, http_wrappers.ErrBodyTooLarge) {
			return serviceerrors.NewServiceError(messages.RequestBodyTooLarge, "Limit", executionContext.Config.Service.MaxBodyBytes)
		}
		return serviceerrors.NewServiceError(messages.InvalidJSONRequest, "Error", err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return serviceerrors.NewServiceError(messages.RequestBodyRequired, "Api", r.Path())
	}

	return Unmarshal(validate, executionContext, body, v)
}

func isJSONMediaType(mediaType string) bool {
	if mediaType == "application/json" {
		return true
	}
	return strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json")
}

func Unmarshal(validate *validator.Validate, executionContext *executioncontext.ExecutionContext, jsonBytes []byte, v any) error {
	err := json.Unmarshal(jsonBytes, v)
	if err != nil {
		return serviceerrors.NewServiceError(messages.InvalidJSONRequest, "Error", err.Error())
	}
	if validate == nil {
		return nil
	}
	// now validate the unmarshalled data
	err = validate.StructCtx(executionContext.Ctx, v)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, validationError := range validationErrors {
				executionContext.Logger.Info("Validation error", "field", validationError.Field(), "tag", validationError.Tag(), "value", validationError.Value())
			}
		}
		return serviceerrors.NewServiceError(messages.RequestValidationFailed, "Error", err.Error())
	}
	// if the validation is successful, return nil
	return nil
}
