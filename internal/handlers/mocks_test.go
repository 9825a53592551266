package handlers_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"net/url"

	"github.com/creativepathway/ml-service/internal/abstractions"
	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/pkg/api"
)

type MockRequest struct {
	method  string
	uri     string
	headers map[string]string
	body    []byte
	bodyErr error
}

func (r *MockRequest) Method() string {
	return r.method
}

func (r *MockRequest) URI() string {
	return r.uri
}

func (r *MockRequest) Header(key string) string {
	return r.headers[key]
}

func (r *MockRequest) SetHeader(key string, value string) {
	r.headers[key] = value
}

func (r *MockRequest) Path() string {
	u, err := url.Parse(r.uri)
	if err != nil {
		return r.uri
	}
	return u.Path
}

func (r *MockRequest) Query(key string) []string {
	u, err := url.Parse(r.uri)
	if err != nil {
		return []string{}
	}
	return u.Query()[key]
}

func (r *MockRequest) BodyAsBytes() ([]byte, error) {
	return r.body, r.bodyErr
}

func createMockRequest(method string, uri string) *MockRequest {
	return &MockRequest{
		method:  method,
		uri:     uri,
		headers: map[string]string{},
	}
}

func createJSONRequest(method string, uri string, body string) *MockRequest {
	req := createMockRequest(method, uri)
	req.headers["Content-Type"] = "application/json"
	req.body = []byte(body)
	return req
}

type MockResponseWrapper struct {
	http_wrappers.ResponseWrapper
	recorder *httptest.ResponseRecorder
}

func newMockResponseWrapper() MockResponseWrapper {
	recorder := httptest.NewRecorder()
	return MockResponseWrapper{
		ResponseWrapper: http_wrappers.NewResponseWrapper(recorder, slog.New(slog.DiscardHandler)),
		recorder:        recorder,
	}
}

func createServiceConfig() *config.Config {
	return &config.Config{
		Service: &config.ServiceConfig{
			Name:         "ml-service",
			Version:      "1.0.0",
			Port:         5000,
			MaxBodyBytes: 1 << 20,
			Predictor:    "static",
		},
	}
}

func createExecutionContext() *executioncontext.ExecutionContext {
	return executioncontext.NewExecutionContext(context.Background(), "test-request-id", slog.New(slog.DiscardHandler), createServiceConfig())
}

// failingPredictor always fails, used to exercise the error path of the predict handler.
type failingPredictor struct{}

func (p failingPredictor) WithLogger(*slog.Logger) abstractions.Predictor {
	return p
}

func (p failingPredictor) Name() string {
	return "failing"
}

func (p failingPredictor) Predict(context.Context, any) (*api.Prediction, error) {
	return nil, errors.New("model unavailable")
}
