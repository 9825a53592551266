package server

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/messages"
	"github.com/creativepathway/ml-service/internal/ratelimit"
	"github.com/creativepathway/ml-service/internal/serviceerrors"
)

// RateLimitMiddleware rejects clients that exceeded the limit of the requested
// route with 429 and a Retry-After header. A nil limiter disables the check.
func RateLimitMiddleware(next http.Handler, limiter *ratelimit.Limiter, logger *slog.Logger) http.Handler {
	if limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := limiter.Allow(r.URL.Path, clientKey(r))
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		seconds := strconv.Itoa(int(math.Ceil(retryAfter.Seconds())))
		w.Header().Set("Retry-After", seconds)

		http_wrappers.NewResponseWrapper(w, executioncontext.Logger(r.Context(), logger)).Error(
			serviceerrors.NewServiceError(messages.RateLimitExceeded, "Api", r.URL.Path, "RetryAfter", seconds),
			executioncontext.RequestID(r.Context()),
		)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
