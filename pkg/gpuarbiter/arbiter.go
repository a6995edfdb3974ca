package gpuarbiter

import (
	"sort"
	"sync"
	"time"
)

// Arbiter selects and reserves accelerators for models.
type Arbiter interface {
	GetStatus() Status
	AllocateGPU(modelID string, vramRequiredGB float64, preferredGPUID *int, exclusive bool) (gpuID *int, ok bool)
	ReleaseGPU(modelID string) bool
	ReleaseAll() int
	RecommendAllocation(models []ModelRequest) map[string]*int
	CanRunParallel(models []ModelRequest) bool
}

// InMemoryArbiter is the single-process Arbiter implementation. All
// operations serialise through mu; the critical section is O(len(gpus) +
// len(allocations)), matching spec §4.7's concurrency requirement.
type InMemoryArbiter struct {
	mu          sync.Mutex
	gpus        []GPU // sorted by GPUID ascending
	allocations map[string]Allocation
	strategy    Strategy
	rrCursor    int
}

// New creates an arbiter over the given GPU inventory, sorted by GPUID.
// An empty or nil strategy defaults to least-loaded.
func New(gpus []GPU, strategy Strategy) *InMemoryArbiter {
	cp := make([]GPU, len(gpus))
	copy(cp, gpus)
	sort.Slice(cp, func(i, j int) bool { return cp[i].GPUID < cp[j].GPUID })
	if strategy == "" {
		strategy = StrategyLeastLoaded
	}
	return &InMemoryArbiter{
		gpus:        cp,
		allocations: make(map[string]Allocation),
		strategy:    strategy,
		rrCursor:    -1,
	}
}

// GetStatus returns a snapshot of the inventory and allocation table.
func (a *InMemoryArbiter) GetStatus() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	gpus := make([]GPU, len(a.gpus))
	copy(gpus, a.gpus)
	allocs := make(map[string]Allocation, len(a.allocations))
	for k, v := range a.allocations {
		allocs[k] = v
	}
	return Status{GPUs: gpus, Allocations: allocs}
}

// AllocateGPU reserves vramRequiredGB of VRAM on a feasible GPU for
// modelID, following the admission rules in spec §4.7: preferredGPUID if
// feasible, else the configured strategy. Returns (nil, false) if no GPU
// is feasible.
func (a *InMemoryArbiter) AllocateGPU(modelID string, vramRequiredGB float64, preferredGPUID *int, exclusive bool) (*int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	chosen, ok := selectGPU(a.gpus, a.allocations, a.strategy, a.rrCursor, vramRequiredGB, preferredGPUID, exclusive)
	if !ok {
		return nil, false
	}

	for i := range a.gpus {
		if a.gpus[i].GPUID == chosen {
			a.gpus[i].UsedMemGB += vramRequiredGB
			break
		}
	}
	a.allocations[modelID] = Allocation{
		ModelID:        modelID,
		GPUID:          chosen,
		VRAMReservedGB: vramRequiredGB,
		Exclusive:      exclusive,
		AcquiredAt:     time.Now().UTC(),
	}
	a.rrCursor = chosen
	id := chosen
	return &id, true
}

// ReleaseGPU frees modelID's reservation, if any. Returns whether a
// reservation existed.
func (a *InMemoryArbiter) ReleaseGPU(modelID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	alloc, ok := a.allocations[modelID]
	if !ok {
		return false
	}
	for i := range a.gpus {
		if a.gpus[i].GPUID == alloc.GPUID {
			a.gpus[i].UsedMemGB -= alloc.VRAMReservedGB
			if a.gpus[i].UsedMemGB < 0 {
				a.gpus[i].UsedMemGB = 0
			}
			break
		}
	}
	delete(a.allocations, modelID)
	return true
}

// ReleaseAll releases every allocation (engine shutdown) and returns the
// count released.
func (a *InMemoryArbiter) ReleaseAll() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := len(a.allocations)
	for i := range a.gpus {
		a.gpus[i].UsedMemGB = 0
	}
	a.allocations = make(map[string]Allocation)
	return n
}

// RecommendAllocation is a pure function: it runs the same selection
// logic greedily over a hypothetical allocation table seeded from the
// real one, in the order models is given, without mutating arbiter state.
func (a *InMemoryArbiter) RecommendAllocation(models []ModelRequest) map[string]*int {
	a.mu.Lock()
	gpus := make([]GPU, len(a.gpus))
	copy(gpus, a.gpus)
	allocs := make(map[string]Allocation, len(a.allocations))
	for k, v := range a.allocations {
		allocs[k] = v
	}
	strategy := a.strategy
	cursor := a.rrCursor
	a.mu.Unlock()

	result := make(map[string]*int, len(models))
	for _, m := range models {
		chosen, ok := selectGPU(gpus, allocs, strategy, cursor, m.VRAMRequiredGB, nil, false)
		if !ok {
			result[m.ModelID] = nil
			continue
		}
		for i := range gpus {
			if gpus[i].GPUID == chosen {
				gpus[i].UsedMemGB += m.VRAMRequiredGB
				break
			}
		}
		allocs[m.ModelID] = Allocation{ModelID: m.ModelID, GPUID: chosen, VRAMReservedGB: m.VRAMRequiredGB}
		cursor = chosen
		id := chosen
		result[m.ModelID] = &id
	}
	return result
}

// CanRunParallel reports whether every model in models recommends a
// non-nil GPU.
func (a *InMemoryArbiter) CanRunParallel(models []ModelRequest) bool {
	rec := a.RecommendAllocation(models)
	for _, m := range models {
		if rec[m.ModelID] == nil {
			return false
		}
	}
	return true
}

// selectGPU implements the admission rules shared by AllocateGPU and
// RecommendAllocation over an explicit (gpus, allocations) snapshot, so
// the recommendation path can run it without touching arbiter state.
func selectGPU(gpus []GPU, allocations map[string]Allocation, strategy Strategy, rrCursor int, vramRequiredGB float64, preferredGPUID *int, exclusive bool) (int, bool) {
	hasAllocation := make(map[int]bool)
	for _, alloc := range allocations {
		hasAllocation[alloc.GPUID] = true
	}

	feasible := func(g GPU) bool {
		if exclusive && hasAllocation[g.GPUID] {
			return false
		}
		return g.TotalMemGB-g.UsedMemGB >= vramRequiredGB
	}

	if preferredGPUID != nil {
		for _, g := range gpus {
			if g.GPUID == *preferredGPUID && feasible(g) {
				return g.GPUID, true
			}
		}
	}

	var candidates []GPU
	for _, g := range gpus {
		if feasible(g) {
			candidates = append(candidates, g)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	switch strategy {
	case StrategyFirstFit:
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].GPUID < candidates[j].GPUID })
		return candidates[0].GPUID, true
	case StrategyRoundRobin:
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].GPUID < candidates[j].GPUID })
		for _, g := range candidates {
			if g.GPUID > rrCursor {
				return g.GPUID, true
			}
		}
		return candidates[0].GPUID, true
	default: // StrategyLeastLoaded
		sort.Slice(candidates, func(i, j int) bool {
			postI := candidates[i].UsedMemGB + vramRequiredGB
			postJ := candidates[j].UsedMemGB + vramRequiredGB
			if postI != postJ {
				return postI < postJ
			}
			return candidates[i].GPUID < candidates[j].GPUID
		})
		return candidates[0].GPUID, true
	}
}
