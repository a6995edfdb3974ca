package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rtpro256/workflow-engine-core/pkg/gpuarbiter"
)

func (s *Server) requireArbiter(w http.ResponseWriter) bool {
	if s.arbiter == nil {
		s.writeJSONResponse(w, http.StatusServiceUnavailable, map[string]interface{}{
			"success": false,
			"error":   "gpu arbiter not configured",
		})
		return false
	}
	return true
}

// handleGPUStatus returns the current GPU inventory and allocation table.
func (s *Server) handleGPUStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  s.arbiter.GetStatus(),
	})
}

// allocateRequest is the body of POST /gpu/allocate.
type allocateRequest struct {
	ModelID        string  `json:"model_id"`
	VRAMRequiredGB float64 `json:"vram_required_gb"`
	PreferredGPUID *int    `json:"preferred_gpu_id,omitempty"`
	Exclusive      bool    `json:"exclusive,omitempty"`
}

// handleGPUAllocate reserves VRAM on a feasible GPU for a model.
func (s *Server) handleGPUAllocate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}
	var req allocateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}
	if req.ModelID == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "model_id is required"})
		return
	}

	gpuID, ok := s.arbiter.AllocateGPU(req.ModelID, req.VRAMRequiredGB, req.PreferredGPUID, req.Exclusive)
	status := s.arbiter.GetStatus()
	vramInUse := vramInUseMB(status)
	if !ok {
		s.telemetryProvider.RecordGPUAdmissionRejection(r.Context(), "no feasible gpu")
		s.writeJSONResponse(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "no feasible gpu for requested allocation",
		})
		return
	}

	deviceID := ""
	if gpuID != nil {
		deviceID = deviceIDString(*gpuID)
	}
	s.telemetryProvider.RecordGPUAllocation(r.Context(), deviceID, int64(req.VRAMRequiredGB*1024), vramInUse)

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"gpu_id":  gpuID,
	})
}

// releaseRequest is the body of POST /gpu/release.
type releaseRequest struct {
	ModelID string `json:"model_id"`
}

// handleGPURelease frees a model's GPU reservation.
func (s *Server) handleGPURelease(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}
	var req releaseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	released := s.arbiter.ReleaseGPU(req.ModelID)
	status := s.arbiter.GetStatus()
	s.telemetryProvider.RecordGPURelease(r.Context(), req.ModelID, vramInUseMB(status))

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"released": released,
	})
}

// handleGPUReleaseAll frees every GPU reservation.
func (s *Server) handleGPUReleaseAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}

	count := s.arbiter.ReleaseAll()
	s.telemetryProvider.RecordGPURelease(r.Context(), "*", 0)

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

// recommendRequest is the body of POST /gpu/recommend and
// /gpu/can-run-parallel.
type recommendRequest struct {
	Models []gpuarbiter.ModelRequest `json:"models"`
}

// handleGPURecommend runs the admission strategy over a hypothetical
// batch without mutating arbiter state.
func (s *Server) handleGPURecommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}
	var req recommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	recommendation := s.arbiter.RecommendAllocation(req.Models)
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": recommendation,
	})
}

// handleGPUCanRunParallel reports whether a batch of models can all be
// admitted simultaneously under the current inventory.
func (s *Server) handleGPUCanRunParallel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.requireArbiter(w) {
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}
	var req recommendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"can_run_parallel": s.arbiter.CanRunParallel(req.Models),
	})
}

func vramInUseMB(status gpuarbiter.Status) int64 {
	var total float64
	for _, g := range status.GPUs {
		total += g.UsedMemGB
	}
	return int64(total * 1024)
}

func deviceIDString(id int) string {
	return "gpu-" + strconv.Itoa(id)
}
