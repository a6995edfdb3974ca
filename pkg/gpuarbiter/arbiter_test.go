package gpuarbiter

import "testing"

func newS6Arbiter() *InMemoryArbiter {
	return New([]GPU{{GPUID: 0, TotalMemGB: 24}, {GPUID: 1, TotalMemGB: 24}}, StrategyLeastLoaded)
}

func TestAllocateGPU_S6LeastLoadedSequence(t *testing.T) {
	a := newS6Arbiter()

	g1, ok := a.AllocateGPU("m1", 10, nil, false)
	if !ok || *g1 != 0 {
		t.Fatalf("m1 allocated to %v (ok=%v), want gpu 0", g1, ok)
	}
	g2, ok := a.AllocateGPU("m2", 20, nil, false)
	if !ok || *g2 != 1 {
		t.Fatalf("m2 allocated to %v (ok=%v), want gpu 1", g2, ok)
	}
	g3, ok := a.AllocateGPU("m3", 10, nil, false)
	if !ok || *g3 != 0 {
		t.Fatalf("m3 allocated to %v (ok=%v), want gpu 0 (14 free beats gpu 1's 4 free)", g3, ok)
	}

	status := a.GetStatus()
	for _, g := range status.GPUs {
		switch g.GPUID {
		case 0:
			if g.UsedMemGB != 20 {
				t.Errorf("gpu0 used = %v, want 20", g.UsedMemGB)
			}
		case 1:
			if g.UsedMemGB != 20 {
				t.Errorf("gpu1 used = %v, want 20", g.UsedMemGB)
			}
		}
	}
}

func TestRecommendAllocation_InfeasibleReturnsNilWithoutMutating(t *testing.T) {
	a := newS6Arbiter()
	a.AllocateGPU("m1", 10, nil, false)
	a.AllocateGPU("m2", 20, nil, false)

	rec := a.RecommendAllocation([]ModelRequest{{ModelID: "m4", VRAMRequiredGB: 20}})
	if rec["m4"] != nil {
		t.Errorf("recommend m4@20 = %v, want nil (neither GPU has 20GB free)", *rec["m4"])
	}

	// Recommending must not have mutated real state: m3@10 should still
	// land on gpu0 exactly as in the uninfluenced S6 sequence.
	g3, ok := a.AllocateGPU("m3", 10, nil, false)
	if !ok || *g3 != 0 {
		t.Fatalf("m3 allocated to %v (ok=%v) after a prior recommend call, want gpu 0", g3, ok)
	}
}

func TestCanRunParallel_FalseAfterAllThreeAllocations(t *testing.T) {
	a := newS6Arbiter()
	a.AllocateGPU("m1", 10, nil, false)
	a.AllocateGPU("m2", 20, nil, false)
	a.AllocateGPU("m3", 10, nil, false)

	if a.CanRunParallel([]ModelRequest{{ModelID: "m4", VRAMRequiredGB: 20}}) {
		t.Errorf("CanRunParallel() = true, want false once both GPUs are saturated")
	}
}

func TestAllocateGPU_ExclusivePrefersUnoccupiedGPU(t *testing.T) {
	a := newS6Arbiter()
	a.AllocateGPU("m1", 5, nil, false)

	// Preferred gpu 0 is infeasible for an exclusive request since m1
	// already holds a (non-exclusive) reservation there; the arbiter
	// falls back to the strategy over the remaining feasible GPUs rather
	// than failing outright, per §4.7's "otherwise apply the strategy".
	zero := 0
	gpuID, ok := a.AllocateGPU("m2", 5, &zero, true)
	if !ok || *gpuID != 1 {
		t.Fatalf("exclusive allocation with infeasible preference = %v (ok=%v), want gpu 1", gpuID, ok)
	}

	// Now both GPUs carry an allocation; a further exclusive request has
	// no feasible GPU at all.
	_, ok = a.AllocateGPU("m3", 1, nil, true)
	if ok {
		t.Errorf("exclusive allocation succeeded with both GPUs already occupied")
	}
}

func TestReleaseGPU_FreesCapacityForReuse(t *testing.T) {
	a := newS6Arbiter()
	a.AllocateGPU("m1", 20, nil, false)

	if !a.ReleaseGPU("m1") {
		t.Fatalf("ReleaseGPU(m1) = false, want true")
	}
	if a.ReleaseGPU("m1") {
		t.Fatalf("second ReleaseGPU(m1) = true, want false (idempotent release)")
	}

	gpuID, ok := a.AllocateGPU("m2", 20, nil, false)
	if !ok || *gpuID != 0 {
		t.Fatalf("m2 after release = %v (ok=%v), want gpu 0 reused", gpuID, ok)
	}
}

func TestReleaseAll_ClearsEveryAllocation(t *testing.T) {
	a := newS6Arbiter()
	a.AllocateGPU("m1", 10, nil, false)
	a.AllocateGPU("m2", 10, nil, false)

	if n := a.ReleaseAll(); n != 2 {
		t.Fatalf("ReleaseAll() = %d, want 2", n)
	}
	status := a.GetStatus()
	if len(status.Allocations) != 0 {
		t.Errorf("Allocations after ReleaseAll = %v, want empty", status.Allocations)
	}
	for _, g := range status.GPUs {
		if g.UsedMemGB != 0 {
			t.Errorf("gpu %d used = %v after ReleaseAll, want 0", g.GPUID, g.UsedMemGB)
		}
	}
}

func TestAllocateGPU_NoFeasibleGPUReturnsFalse(t *testing.T) {
	a := newS6Arbiter()
	_, ok := a.AllocateGPU("huge", 100, nil, false)
	if ok {
		t.Errorf("AllocateGPU(100GB) on 24GB GPUs succeeded, want infeasible")
	}
}

func TestAllocateGPU_FirstFitStrategy(t *testing.T) {
	a := New([]GPU{{GPUID: 0, TotalMemGB: 24}, {GPUID: 1, TotalMemGB: 24}}, StrategyFirstFit)
	a.AllocateGPU("m1", 5, nil, false) // gpu0, first-fit picks lowest id regardless of load
	gpuID, ok := a.AllocateGPU("m2", 5, nil, false)
	if !ok || *gpuID != 0 {
		t.Fatalf("first-fit m2 = %v (ok=%v), want gpu 0", gpuID, ok)
	}
}

func TestAllocateGPU_RoundRobinStrategy(t *testing.T) {
	a := New([]GPU{{GPUID: 0, TotalMemGB: 24}, {GPUID: 1, TotalMemGB: 24}}, StrategyRoundRobin)
	g1, _ := a.AllocateGPU("m1", 5, nil, false)
	g2, _ := a.AllocateGPU("m2", 5, nil, false)
	if *g1 == *g2 {
		t.Errorf("round-robin allocated m1 and m2 to the same gpu %d", *g1)
	}
}
