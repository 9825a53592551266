package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/executioncontext"
	"github.com/creativepathway/ml-service/internal/handlers"
	"github.com/creativepathway/ml-service/internal/http_wrappers"
	"github.com/creativepathway/ml-service/internal/ratelimit"
)

const (
	HealthPath  = "/api/ml/health"
	PredictPath = "/api/ml/predict"
	StatusPath  = "/api/ml/status"
)

type Server struct {
	httpServer    *http.Server
	logger        *slog.Logger
	serviceConfig *config.Config
	handlers      *handlers.Handlers
	mcpHandler    http.Handler
	limiter       *ratelimit.Limiter
}

type handlerFunc func(*executioncontext.ExecutionContext, http_wrappers.RequestWrapper, http_wrappers.ResponseWrapper)

// NewServer creates the HTTP server. mcpHandler is optional, when set it is
// mounted on the configured MCP path.
func NewServer(logger *slog.Logger, serviceConfig *config.Config, h *handlers.Handlers, mcpHandler http.Handler) (*Server, error) {
	if serviceConfig == nil || serviceConfig.Service == nil {
		return nil, errors.New("service config is required")
	}
	if h == nil {
		return nil, errors.New("handlers are required")
	}

	s := &Server{
		logger:        logger,
		serviceConfig: serviceConfig,
		handlers:      h,
		mcpHandler:    mcpHandler,
		limiter:       ratelimit.NewFromConfig(serviceConfig.RateLimit, HealthPath, PredictPath),
	}

	s.httpServer = &http.Server{
		Addr:         serviceConfig.Service.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  serviceConfig.Service.ReadTimeout,
		WriteTimeout: serviceConfig.Service.WriteTimeout,
		IdleTimeout:  serviceConfig.Service.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return s, nil
}

func (s *Server) metricsEnabled() bool {
	return s.serviceConfig.Metrics != nil && s.serviceConfig.Metrics.Enabled
}

// Handler builds the routes and the middleware chain. From the outside in:
// tracing, client address, request logging, panic recovery, then inside the
// router span naming, metrics, CORS and rate limiting.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(SpanNameMiddleware)
	if s.metricsEnabled() {
		router.Use(Middleware)
	}
	router.Use(func(next http.Handler) http.Handler {
		return CorsMiddleware(next, s.serviceConfig)
	})
	router.Use(func(next http.Handler) http.Handler {
		return RateLimitMiddleware(next, s.limiter, s.logger)
	})

	router.Get(HealthPath, s.handle(func(ctx *executioncontext.ExecutionContext, r http_wrappers.RequestWrapper, w http_wrappers.ResponseWrapper) {
		s.handlers.HandleHealth(ctx, w)
	}))
	router.Post(PredictPath, s.handle(s.handlers.HandlePredict))
	router.Get(StatusPath, s.handle(s.handlers.HandleStatus))

	if s.metricsEnabled() {
		router.Method(http.MethodGet, s.serviceConfig.Metrics.Path, promhttp.Handler())
	}
	if s.mcpHandler != nil && s.serviceConfig.MCP != nil {
		router.Handle(s.serviceConfig.MCP.Path, s.withoutWriteDeadline(s.mcpHandler))
	}

	router.NotFound(s.handle(s.handlers.HandleNotFound))
	router.MethodNotAllowed(s.handle(s.handlers.HandleMethodNotAllowed))

	var handler http.Handler = router
	handler = RecoverMiddleware(handler, s.logger)
	handler = RequestLoggingMiddleware(handler, s.logger)
	if s.serviceConfig.Service.TrustProxy {
		handler = chimw.RealIP(handler)
	}
	// The span starts with the method only, SpanNameMiddleware adds the route once it is matched.
	return otelhttp.NewHandler(handler, s.serviceConfig.Service.Name,
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method
		}),
	)
}

// withoutWriteDeadline clears the server write timeout for next. The MCP
// streamable HTTP transport keeps GET streams open for the whole session.
func (s *Server) withoutWriteDeadline(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			executioncontext.Logger(r.Context(), s.logger).Debug("Failed to clear the write deadline", "error", err)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := executioncontext.Logger(r.Context(), s.logger)
		ctx := executioncontext.NewExecutionContext(r.Context(), executioncontext.RequestID(r.Context()), logger, s.serviceConfig)
		fn(ctx, http_wrappers.NewRequestWrapper(r, s.serviceConfig.Service.MaxBodyBytes), http_wrappers.NewResponseWrapper(w, logger))
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts the server down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Server listening", "addr", listener.Addr().String())
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.serviceConfig.Service.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if s.limiter != nil {
		g.Go(func() error {
			return s.limiter.Run(gctx, s.serviceConfig.RateLimit.CleanupInterval)
		})
	}

	return g.Wait()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server shutdown completed")
	return nil
}
