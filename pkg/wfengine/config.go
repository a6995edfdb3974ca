package wfengine

import "time"

// Config configures one Engine instance.
type Config struct {
	// MaxConcurrentNodes bounds how many nodes within one layer run at
	// once. Default 10.
	MaxConcurrentNodes int
	// DefaultTimeoutSeconds bounds how long a single node's Execute may
	// run before it is treated as timed out. Default 300s.
	DefaultTimeoutSeconds time.Duration
	// RetryFailedNodes enables the retry loop for nodes whose result
	// marks itself Retryable. Default true.
	RetryFailedNodes bool
	// MaxRetries is the maximum number of retry attempts per node,
	// beyond the first. Default 3.
	MaxRetries int
	// ContinueOnError lets later layers run after a node fails. Siblings
	// in the failing node's layer always finish; a consumer of the failed
	// node receives no value on that edge, so a required input port fails
	// validation. The execution still ends failed. Default false.
	ContinueOnError bool
	// EnableCaching is carried in the configuration only; the engine does
	// not read it and caches nothing. Default true.
	EnableCaching bool

	// RetryInitialBackoff is the delay before the first retry.
	// Default 100ms.
	RetryInitialBackoff time.Duration
	// RetryMaxBackoff caps the geometric backoff. Default 5s.
	RetryMaxBackoff time.Duration
	// RetryBackoffFactor is the geometric growth multiplier. Default 2.0.
	RetryBackoffFactor float64
}

// DefaultConfig returns the engine defaults from spec: max 10 concurrent
// nodes, a 300s per-node timeout, retry enabled with up to 3 retries,
// fail-fast on error, caching enabled.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentNodes:    10,
		DefaultTimeoutSeconds: 300 * time.Second,
		RetryFailedNodes:      true,
		MaxRetries:            3,
		ContinueOnError:       false,
		EnableCaching:         true,
		RetryInitialBackoff:   100 * time.Millisecond,
		RetryMaxBackoff:       5 * time.Second,
		RetryBackoffFactor:    2.0,
	}
}
