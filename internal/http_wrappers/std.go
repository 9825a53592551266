package http_wrappers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
	"github.com/creativepathway/ml-service/pkg/api"
)

// ErrBodyTooLarge is returned by BodyAsBytes when the body exceeds the limit.
var ErrBodyTooLarge = errors.New("request body too large")

type stdRequest struct {
	r            *http.Request
	maxBodyBytes int64
}

// NewRequestWrapper wraps a net/http request. Reading the body fails with
// ErrBodyTooLarge beyond maxBodyBytes.
func NewRequestWrapper(r *http.Request, maxBodyBytes int64) RequestWrapper {
	return &stdRequest{r: r, maxBodyBytes: maxBodyBytes}
}

func (s *stdRequest) Method() string {
	return s.r.Method
}

func (s *stdRequest) URI() string {
	return s.r.URL.RequestURI()
}

func (s *stdRequest) Header(key string) string {
	return s.r.Header.Get(key)
}

func (s *stdRequest) SetHeader(key string, value string) {
	s.r.Header.Set(key, value)
}

func (s *stdRequest) Path() string {
	return s.r.URL.Path
}

func (s *stdRequest) Query(key string) []string {
	return s.r.URL.Query()[key]
}

func (s *stdRequest) BodyAsBytes() ([]byte, error) {
	if s.r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(s.r.Body, s.maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxBodyBytes {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

type stdResponse struct {
	w      http.ResponseWriter
	logger *slog.Logger
}

// NewResponseWrapper wraps a net/http response writer.
func NewResponseWrapper(w http.ResponseWriter, logger *slog.Logger) ResponseWrapper {
	return &stdResponse{w: w, logger: logger}
}

func (s *stdResponse) Error(err error, requestId string) {
	var serviceError *serviceerrors.ServiceError
	if !errors.As(err, &serviceError) {
		serviceError = serviceerrors.NewServiceError(messages.UnknownError, "Error", err.Error())
	}
	code := serviceError.MessageCode().GetCode()
	if code >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", serviceError.Error(), "code", code)
	} else {
		s.logger.Info("Request rejected", "error", serviceError.Error(), "code", code)
	}
	s.WriteJSON(api.ErrorResponse{
		Success:     false,
		MessageCode: serviceError.MessageCode().GetMessageCode(),
		Message:     serviceError.Error(),
		RequestID:   requestId,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}, code)
}

func (s *stdResponse) SetHeader(key string, value string) {
	s.w.Header().Set(key, value)
}

func (s *stdResponse) DeleteHeader(key string) {
	s.w.Header().Del(key)
}

func (s *stdResponse) SetStatusCode(code int) {
	s.w.WriteHeader(code)
}

func (s *stdResponse) Write(buf []byte) (int, error) {
	return s.w.Write(buf)
}

func (s *stdResponse) WriteJSON(v any, code int) {
	s.w.Header().Set("Content-Type", "application/json")
	s.w.WriteHeader(code)
	if err := json.NewEncoder(s.w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
