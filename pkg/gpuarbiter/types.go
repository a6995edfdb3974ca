package gpuarbiter

import "time"

// GPU is one accelerator in the inventory.
type GPU struct {
	GPUID      int
	TotalMemGB float64
	UsedMemGB  float64
	Name       string
}

// Allocation binds a model to a GPU reservation.
type Allocation struct {
	ModelID        string
	GPUID          int
	VRAMReservedGB float64
	Exclusive      bool
	AcquiredAt     time.Time
}

// Strategy selects among GPUs that are feasible for a request.
type Strategy string

const (
	// StrategyLeastLoaded minimises post-allocation used VRAM, breaking
	// ties by lower GPUID. Default strategy.
	StrategyLeastLoaded Strategy = "least-loaded"
	// StrategyFirstFit picks the lowest-id feasible GPU.
	StrategyFirstFit Strategy = "first-fit"
	// StrategyRoundRobin picks the next GPU after the last allocation,
	// wrapping, via a persisted cursor.
	StrategyRoundRobin Strategy = "round-robin"
)

// ModelRequest is one entry in a recommendation/batch request.
type ModelRequest struct {
	ModelID        string
	VRAMRequiredGB float64
}

// Status is the read-only snapshot returned by GetStatus.
type Status struct {
	GPUs        []GPU
	Allocations map[string]Allocation
}
