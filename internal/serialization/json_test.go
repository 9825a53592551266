package serialization

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
	"github.com/creativepathway/ml-service/internal/validation"
	"github.com/creativepathway/ml-service/pkg/api"
)

func newExecutionContext() *executioncontext.ExecutionContext {
	serviceConfig := &config.Config{Service: &config.ServiceConfig{MaxBodyBytes: 64}}
	return executioncontext.NewExecutionContext(context.Background(), "req-1", slog.New(slog.DiscardHandler), serviceConfig)
}

func newRequest(contentType string, body string) http_wrappers.RequestWrapper {
	r := httptest.NewRequest(http.MethodPost, "/api/ml/predict", strings.NewReader(body))
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return http_wrappers.NewRequestWrapper(r, 64)
}

func TestDecodeRequest(t *testing.T) {
	validate, err := validation.NewValidator()
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	testCases := []struct {
		name         string
		contentType  string
		body         string
		expectedCode *messages.MessageCode
		expectedUser any
	}{
		{name: "user id", contentType: "application/json", body: `{"userId":"abc123"}`, expectedUser: "abc123"},
		{name: "charset parameter", contentType: "application/json; charset=utf-8", body: `{"userId":"abc123"}`, expectedUser: "abc123"},
		{name: "empty object", contentType: "application/json", body: `{}`, expectedUser: api.UnknownUserID},
		{name: "null user id is echoed", contentType: "application/json", body: `{"userId":null}`, expectedUser: nil},
		{name: "null body", contentType: "application/json", body: `null`, expectedUser: api.UnknownUserID},
		{name: "empty user id is echoed", contentType: "application/json", body: `{"userId":""}`, expectedUser: ""},
		{name: "unknown fields are ignored", contentType: "application/json", body: `{"userId":"u1","extra":[1,2]}`, expectedUser: "u1"},
		{name: "missing content type", body: `{"userId":"abc123"}`, expectedCode: messages.UnsupportedMediaType},
		{name: "structured syntax suffix", contentType: "application/vnd.api+json", body: `{"userId":"abc123"}`, expectedUser: "abc123"},
		{name: "problem json", contentType: "application/problem+json; charset=utf-8", body: `{"userId":"abc123"}`, expectedUser: "abc123"},
		{name: "suffix outside application", contentType: "text/vnd.example+json", body: `{"userId":"abc123"}`, expectedCode: messages.UnsupportedMediaType},
		{name: "json without suffix separator", contentType: "application/notjson", body: `{"userId":"abc123"}`, expectedCode: messages.UnsupportedMediaType},
		{name: "wrong content type", contentType: "text/plain", body: `{"userId":"abc123"}`, expectedCode: messages.UnsupportedMediaType},
		{name: "empty body", contentType: "application/json", body: "", expectedCode: messages.RequestBodyRequired},
		{name: "whitespace body", contentType: "application/json", body: "  \n", expectedCode: messages.RequestBodyRequired},
		{name: "malformed JSON", contentType: "application/json", body: `{"userId":`, expectedCode: messages.InvalidJSONRequest},
		{name: "array body", contentType: "application/json", body: `["abc123"]`, expectedCode: messages.InvalidJSONRequest},
		{name: "numeric user id is echoed", contentType: "application/json", body: `{"userId":42}`, expectedUser: json.Number("42")},
		{name: "large numeric user id keeps its digits", contentType: "application/json", body: `{"userId":12345678901234567}`, expectedUser: json.Number("12345678901234567")},
		{name: "object user id is echoed", contentType: "application/json", body: `{"userId":{"a":[1]}}`, expectedUser: map[string]any{"a": []any{json.Number("1")}}},
		{name: "body too large", contentType: "application/json", body: `{"userId":"` + strings.Repeat("x", 64) + `"}`, expectedCode: messages.RequestBodyTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var req api.PredictionRequest
			err := DecodeRequest(validate, newExecutionContext(), newRequest(tc.contentType, tc.body), &req)

			if tc.expectedCode == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if diff := cmp.Diff(tc.expectedUser, req.GetUserID()); diff != "" {
					t.Errorf("user id mismatch (-expected +got):\n%s", diff)
				}
				return
			}

			var serviceError *serviceerrors.ServiceError
			if !errors.As(err, &serviceError) {
				t.Fatalf("expected a service error, got %v", err)
			}
			if serviceError.MessageCode() != tc.expectedCode {
				t.Errorf("expected %s, got %s", tc.expectedCode.GetMessageCode(), serviceError.MessageCode().GetMessageCode())
			}
		})
	}
}

func TestUnmarshalValidation(t *testing.T) {
	validate, err := validation.NewValidator()
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	type labelled struct {
		Label string `json:"label" validate:"required"`
	}

	var v labelled
	err = Unmarshal(validate, newExecutionContext(), []byte(`{}`), &v)
	var serviceError *serviceerrors.ServiceError
	if !errors.As(err, &serviceError) {
		t.Fatalf("expected a service error, got %v", err)
	}
	if serviceError.MessageCode() != messages.RequestValidationFailed {
		t.Errorf("expected RequestValidationFailed, got %s", serviceError.MessageCode().GetMessageCode())
	}

	if err := Unmarshal(nil, newExecutionContext(), []byte(`{}`), &v); err != nil {
		t.Errorf("expected no validation without a validator, got %v", err)
	}
}
