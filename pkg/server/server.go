package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rtpro256/workflow-engine-core/pkg/gpuarbiter"
	"github.com/rtpro256/workflow-engine-core/pkg/health"
	"github.com/rtpro256/workflow-engine-core/pkg/httpclient"
	"github.com/rtpro256/workflow-engine-core/pkg/logging"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/storage"
	"github.com/rtpro256/workflow-engine-core/pkg/telemetry"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
)

// Config holds server configuration
type Config struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration

	// ShutdownTimeout for graceful shutdown
	ShutdownTimeout time.Duration

	// MaxRequestBodySize limits request body size
	MaxRequestBodySize int64

	// EnableCORS enables CORS headers
	EnableCORS bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Address:            ":8080",
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 10 * 1024 * 1024, // 10MB
		EnableCORS:         true,
	}
}

// Server is the HTTP API server fronting the engine, node registry,
// workflow store, and GPU arbiter.
type Server struct {
	config            Config
	httpServer        *http.Server
	healthChecker     *health.Checker
	telemetryProvider *telemetry.Provider
	logger            *logging.Logger

	engine             *wfengine.Engine
	registry           *noderegistry.Registry
	store              storage.Store
	arbiter            gpuarbiter.Arbiter
	httpClientRegistry *httpclient.Registry
}

// New creates a new server instance wired to engine, registry, store, and
// arbiter. A nil store defaults to a fresh storage.InMemoryStore; a nil
// arbiter leaves the /gpu/* routes registered but erroring on use.
func New(config Config, engine *wfengine.Engine, registry *noderegistry.Registry, store storage.Store, arbiter gpuarbiter.Arbiter) (*Server, error) {
	logger := logging.New(logging.DefaultConfig())

	telemetryConfig := telemetry.DefaultConfig()
	telemetryProvider, err := telemetry.NewProvider(context.Background(), telemetryConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry provider: %w", err)
	}

	if store == nil {
		store = storage.NewInMemoryStore()
	}

	healthChecker := health.NewChecker("workflow-engine-core", "0.1.0")
	healthChecker.RegisterCheck("registry", func(ctx context.Context) error {
		if registry == nil {
			return fmt.Errorf("node registry not configured")
		}
		return nil
	}, 5*time.Second, true)
	healthChecker.RegisterCheck("engine", func(ctx context.Context) error {
		if engine == nil {
			return fmt.Errorf("engine not configured")
		}
		return nil
	}, 5*time.Second, true)
	healthChecker.RegisterCheck("gpu_arbiter", func(ctx context.Context) error {
		if arbiter == nil {
			return fmt.Errorf("gpu arbiter not configured")
		}
		return nil
	}, 5*time.Second, false)

	server := &Server{
		config:             config,
		healthChecker:      healthChecker,
		telemetryProvider:  telemetryProvider,
		logger:             logger,
		engine:             engine,
		registry:           registry,
		store:              store,
		arbiter:            arbiter,
		httpClientRegistry: httpclient.NewRegistry(),
	}

	mux := http.NewServeMux()
	server.registerRoutes(mux)

	server.httpServer = &http.Server{
		Addr:         config.Address,
		Handler:      server.middlewareChain(mux),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return server, nil
}

// registerRoutes registers all HTTP routes
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Health endpoints
	mux.HandleFunc("/health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("/health/live", s.healthChecker.LivenessHandler())
	mux.HandleFunc("/health/ready", s.healthChecker.ReadinessHandler())

	// Metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Workflow execution
	mux.HandleFunc("/api/v1/workflow/execute", s.handleExecuteWorkflow)
	mux.HandleFunc("/api/v1/workflow/execute/stream", s.handleExecuteWorkflowStream)
	mux.HandleFunc("/api/v1/workflow/validate", s.handleValidateWorkflow)

	// Workflow storage (save/list/load/update/delete/execute-by-id)
	mux.HandleFunc("/api/v1/workflows", s.handleWorkflowsCollection)
	mux.HandleFunc("/api/v1/workflows/", s.handleWorkflowItem)

	// Node type registry
	mux.HandleFunc("/api/v1/node-types", s.handleListNodeTypes)

	// GPU arbiter
	mux.HandleFunc("/api/v1/gpu/status", s.handleGPUStatus)
	mux.HandleFunc("/api/v1/gpu/allocate", s.handleGPUAllocate)
	mux.HandleFunc("/api/v1/gpu/release", s.handleGPURelease)
	mux.HandleFunc("/api/v1/gpu/release-all", s.handleGPUReleaseAll)
	mux.HandleFunc("/api/v1/gpu/recommend", s.handleGPURecommend)
	mux.HandleFunc("/api/v1/gpu/can-run-parallel", s.handleGPUCanRunParallel)

	// HTTP client registry (named, pre-configured outbound clients)
	mux.HandleFunc("/api/v1/httpclients", s.handleHTTPClientsCollection)
}

// middlewareChain applies middleware to the handler
func (s *Server) middlewareChain(handler http.Handler) http.Handler {
	if s.config.EnableCORS {
		handler = s.corsMiddleware(handler)
	}
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)
	return handler
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int, err error) {
	s.logger.WithError(err).WithField("status_code", statusCode).Error(message)

	s.writeJSONResponse(w, statusCode, map[string]interface{}{
		"success": false,
		"error":   message,
		"details": err.Error(),
	})
}

// readBody enforces the configured body size limit and reads it fully.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestBodySize)
	return io.ReadAll(r.Body)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.WithField("address", s.config.Address).Info("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.engine != nil {
		s.engine.Shutdown()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown http server: %w", err)
	}

	if err := s.telemetryProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown telemetry: %w", err)
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(startTime)

		s.logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.statusCode,
			"duration_ms": duration.Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("http request")
	})
}

// recoveryMiddleware recovers from panics
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.WithField("error", fmt.Sprintf("%v", err)).
					WithField("path", r.URL.Path).
					Error("panic recovered")

				http.Error(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
