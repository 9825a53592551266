package server

import (
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

// SpanNameMiddleware renames the request span to the method and the matched
// route pattern, the same bounded label the metrics use.
func SpanNameMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		trace.SpanFromContext(r.Context()).SetName(r.Method + " " + routeLabel(r))
	})
}
