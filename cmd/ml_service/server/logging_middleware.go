package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/creativepathway/ml-service/internal/constants"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
	"github.com/creativepathway/ml-service/internal/telemetry"
)

// RequestLoggingMiddleware assigns the request id, stores a request-scoped
// logger in the request context and logs every completed request.
func RequestLoggingMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(constants.HEADER_REQUEST_ID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(constants.HEADER_REQUEST_ID, requestID)

		requestLogger := logger.With(
			constants.LOG_REQUEST_ID, requestID,
			constants.LOG_METHOD, r.Method,
			constants.LOG_URI, r.URL.RequestURI(),
			constants.LOG_REMOTE_ADR, r.RemoteAddr,
			constants.LOG_USER_AGENT, r.UserAgent(),
		)
		if traceID := telemetry.TraceID(r.Context()); traceID != "" {
			requestLogger = requestLogger.With(constants.LOG_TRACE_ID, traceID)
		}
		if referer := r.Referer(); referer != "" {
			requestLogger = requestLogger.With(constants.LOG_REFERER, referer)
		}

		ctx := executioncontext.WithRequestID(r.Context(), requestID)
		ctx = executioncontext.WithLogger(ctx, requestLogger)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r.WithContext(ctx))

		elapsed := time.Since(start)
		if rw.statusCode >= http.StatusBadRequest {
			requestLogger.Warn("Request completed with error", constants.LOG_RESP_CODE, rw.statusCode, constants.LOG_ELAPSED, elapsed)
			return
		}
		requestLogger.Info("Request completed", constants.LOG_RESP_CODE, rw.statusCode, constants.LOG_ELAPSED, elapsed)
	})
}

// RecoverMiddleware turns a handler panic into a JSON 500 response.
func RecoverMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			requestLogger := executioncontext.Logger(r.Context(), logger)
			requestLogger.Error("Recovered from panic", constants.LOG_ERROR, fmt.Sprint(rec))
			http_wrappers.NewResponseWrapper(w, requestLogger).Error(
				serviceerrors.NewServiceError(messages.InternalServerError, "Error", fmt.Sprint(rec)),
				executioncontext.RequestID(r.Context()),
			)
		}()

		next.ServeHTTP(w, r)
	})
}
