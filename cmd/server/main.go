// Command server starts the workflow engine HTTP API server.
//
// Usage:
//
//	server [flags]
//
// Flags:
//
//	-addr string
//	    Server address (default ":8080")
//	-read-timeout duration
//	    HTTP read timeout (default 30s)
//	-write-timeout duration
//	    HTTP write timeout (default 30s)
//	-max-concurrent-nodes int
//	    Maximum nodes running concurrently within one layer (default 10)
//	-node-timeout duration
//	    Per-node execution timeout (default 300s)
//	-max-retries int
//	    Maximum retry attempts for a retryable node failure (default 3)
//	-gpu-count int
//	    Number of GPUs in the arbiter's inventory (default 0, disables GPU routes)
//	-gpu-vram-gb float
//	    VRAM per GPU, in GB (default 16)
//	-gpu-strategy string
//	    GPU selection strategy: least-loaded, first-fit, round-robin (default least-loaded)
//
// Example:
//
//	# Start server on default port
//	server
//
//	# Start server with a 2-GPU inventory
//	server -addr :9090 -gpu-count 2 -gpu-vram-gb 24
//
// The server exposes the following endpoints:
//
//	POST   /api/v1/workflow/execute           - Execute a workflow graph
//	POST   /api/v1/workflow/execute/stream    - Execute, streaming events as ndjson
//	POST   /api/v1/workflow/validate          - Validate a workflow graph
//	GET    /api/v1/workflows                  - List saved workflows
//	POST   /api/v1/workflows                  - Save a workflow
//	GET    /api/v1/workflows/{id}              - Load a saved workflow
//	PUT    /api/v1/workflows/{id}              - Update a saved workflow
//	DELETE /api/v1/workflows/{id}              - Delete a saved workflow
//	POST   /api/v1/workflows/{id}/execute      - Execute a saved workflow by ID
//	GET    /api/v1/node-types                  - List registered node type schemas
//	GET    /api/v1/gpu/status                  - GPU inventory and allocations
//	POST   /api/v1/gpu/allocate                - Reserve VRAM for a model
//	POST   /api/v1/gpu/release                 - Release a model's reservation
//	POST   /api/v1/gpu/release-all             - Release every reservation
//	POST   /api/v1/gpu/recommend               - Dry-run allocation for a batch
//	POST   /api/v1/gpu/can-run-parallel        - Check whether a batch all fits
//	GET    /api/v1/httpclients                 - List registered named HTTP clients
//	POST   /api/v1/httpclients                 - Register a named HTTP client
//	GET    /health                             - Health check
//	GET    /health/live                        - Liveness probe
//	GET    /health/ready                       - Readiness probe
//	GET    /metrics                            - Prometheus metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rtpro256/workflow-engine-core/pkg/builtinnodes"
	"github.com/rtpro256/workflow-engine-core/pkg/gpuarbiter"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/server"
	"github.com/rtpro256/workflow-engine-core/pkg/storage"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
)

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	maxConcurrentNodes := flag.Int("max-concurrent-nodes", 10, "Maximum nodes running concurrently within one layer")
	nodeTimeout := flag.Duration("node-timeout", 300*time.Second, "Per-node execution timeout")
	maxRetries := flag.Int("max-retries", 3, "Maximum retry attempts for a retryable node failure")
	gpuCount := flag.Int("gpu-count", 0, "Number of GPUs in the arbiter's inventory (0 disables GPU routes)")
	gpuVRAMGB := flag.Float64("gpu-vram-gb", 16, "VRAM per GPU, in GB")
	gpuStrategy := flag.String("gpu-strategy", string(gpuarbiter.StrategyLeastLoaded), "GPU selection strategy: least-loaded, first-fit, round-robin")

	flag.Parse()

	serverConfig := server.Config{
		Address:            *addr,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 10 * 1024 * 1024, // 10MB
		EnableCORS:         true,
	}

	engineConfig := wfengine.DefaultConfig()
	engineConfig.MaxConcurrentNodes = *maxConcurrentNodes
	engineConfig.DefaultTimeoutSeconds = *nodeTimeout
	engineConfig.MaxRetries = *maxRetries

	registry := noderegistry.Default
	engine := wfengine.NewWithConfig(engineConfig, registry)
	store := storage.NewInMemoryStore()

	var arbiter gpuarbiter.Arbiter
	if *gpuCount > 0 {
		gpus := make([]gpuarbiter.GPU, *gpuCount)
		for i := range gpus {
			gpus[i] = gpuarbiter.GPU{GPUID: i, TotalMemGB: *gpuVRAMGB, Name: fmt.Sprintf("gpu-%d", i)}
		}
		arbiter = gpuarbiter.New(gpus, gpuarbiter.Strategy(*gpuStrategy))
	}

	srv, err := server.New(serverConfig, engine, registry, store, arbiter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Starting Workflow Engine Server on %s\n", *addr)
		fmt.Printf("Health check:     http://localhost%s/health\n", *addr)
		fmt.Printf("Liveness probe:   http://localhost%s/health/live\n", *addr)
		fmt.Printf("Readiness probe:  http://localhost%s/health/ready\n", *addr)
		fmt.Printf("Metrics:          http://localhost%s/metrics\n", *addr)
		fmt.Printf("API endpoint:     http://localhost%s/api/v1/workflow/execute\n", *addr)
		fmt.Println("\nPress Ctrl+C to shutdown")

		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)
		fmt.Println("Shutting down gracefully...")

		ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Server stopped")
	}
}
