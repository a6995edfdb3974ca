package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rtpro256/workflow-engine-core/pkg/telemetry"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
	"github.com/rtpro256/workflow-engine-core/pkg/wfgraph"
)

// ExecuteRequest is the body of an execute/validate request: a graph in
// wfgraph's wire format plus the initial variable bindings.
type ExecuteRequest struct {
	Graph       json.RawMessage        `json:"graph"`
	Variables   map[string]interface{} `json:"variables,omitempty"`
	ExecutionID string                 `json:"execution_id,omitempty"`
}

func (s *Server) parseGraph(body []byte) (*wfgraph.WorkflowGraph, map[string]interface{}, string, error) {
	var req ExecuteRequest
	if err := json.Unmarshal(body, &req); err != nil || len(req.Graph) == 0 {
		// Fall back to treating the whole body as the graph, with no
		// variables, for callers that POST a bare graph document.
		graph, gerr := wfgraph.FromJSON(body, s.registry)
		return graph, nil, "", gerr
	}
	graph, err := wfgraph.FromJSON(req.Graph, s.registry)
	return graph, req.Variables, req.ExecutionID, err
}

// handleExecuteWorkflow runs a graph to completion and returns its final
// snapshot.
func (s *Server) handleExecuteWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	graph, variables, requestedID, err := s.parseGraph(body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to parse workflow graph", http.StatusBadRequest, err)
		return
	}

	observer := telemetry.NewEventBusObserver(s.telemetryProvider)
	executionID, events, err := s.engine.ExecuteStream(r.Context(), graph, variables, requestedID)
	if err != nil {
		s.writeErrorResponse(w, "Failed to start workflow execution", http.StatusBadRequest, err)
		return
	}
	for event := range events {
		observer.Handle(event)
	}

	state, _ := s.engine.GetState(executionID)
	snapshot, err := wfengine.SaveSnapshot(graph, state)
	if err != nil {
		s.writeErrorResponse(w, "Workflow completed but snapshotting failed", http.StatusInternalServerError, err)
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":      state.IsSuccessful(),
		"execution_id": executionID,
		"snapshot":     snapshot,
	})
}

// handleExecuteWorkflowStream runs a graph and streams its ExecutionEvents
// back as newline-delimited JSON, one event per line, until the execution
// reaches a terminal status.
func (s *Server) handleExecuteWorkflowStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	graph, variables, requestedID, err := s.parseGraph(body)
	if err != nil {
		s.writeErrorResponse(w, "Failed to parse workflow graph", http.StatusBadRequest, err)
		return
	}

	_, events, err := s.engine.ExecuteStream(r.Context(), graph, variables, requestedID)
	if err != nil {
		s.writeErrorResponse(w, "Failed to start workflow execution", http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, canFlush := w.(http.Flusher)
	observer := telemetry.NewEventBusObserver(s.telemetryProvider)
	enc := json.NewEncoder(w)
	for event := range events {
		observer.Handle(event)
		if err := enc.Encode(event); err != nil {
			s.logger.WithError(err).Error("failed to encode streamed event")
			return
		}
		if canFlush {
			flusher.Flush()
		}
	}
}

// handleValidateWorkflow parses and validates a graph without executing
// it.
func (s *Server) handleValidateWorkflow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	graph, _, _, err := s.parseGraph(body)
	if err != nil {
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if errs := graph.Validate(); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"valid":  false,
			"errors": messages,
		})
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"valid": true,
	})
}

// SaveWorkflowRequest represents the request to save a workflow
type SaveWorkflowRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// handleWorkflowsCollection handles GET (list) and POST (save) on
// /api/v1/workflows.
func (s *Server) handleWorkflowsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		summaries := s.store.List()
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"workflows": summaries,
			"count":     len(summaries),
		})
	case http.MethodPost:
		body, err := s.readBody(w, r)
		if err != nil {
			s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
			return
		}
		var req SaveWorkflowRequest
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
			return
		}
		id, err := s.store.Save(req.Name, req.Description, req.Data)
		if err != nil {
			s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"error":   "failed to save workflow: " + err.Error(),
			})
			return
		}
		s.logger.WithField("id", id).WithField("name", req.Name).Info("workflow saved")
		s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"id":      id,
		})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleWorkflowItem handles GET/PUT/DELETE on /api/v1/workflows/{id} and
// POST on /api/v1/workflows/{id}/execute.
func (s *Server) handleWorkflowItem(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/workflows/")
	path = strings.TrimSuffix(path, "/")

	if id, ok := strings.CutSuffix(path, "/execute"); ok {
		s.handleExecuteWorkflowByID(w, r, id)
		return
	}

	id := strings.TrimSpace(path)
	if id == "" {
		s.writeErrorResponse(w, "workflow id is required", http.StatusBadRequest, fmt.Errorf("empty id"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		wf, err := s.store.Load(id)
		if err != nil {
			s.writeJSONResponse(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true, "workflow": wf})
	case http.MethodPut:
		body, err := s.readBody(w, r)
		if err != nil {
			s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
			return
		}
		var req SaveWorkflowRequest
		if err := json.Unmarshal(body, &req); err != nil {
			s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
			return
		}
		if err := s.store.Update(id, req.Name, req.Description, req.Data); err != nil {
			s.writeJSONResponse(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true})
	case http.MethodDelete:
		if err := s.store.Delete(id); err != nil {
			s.writeJSONResponse(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": err.Error()})
			return
		}
		s.logger.WithField("id", id).Info("workflow deleted")
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{"success": true})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleExecuteWorkflowByID loads a stored workflow by id and executes it
// to completion.
func (s *Server) handleExecuteWorkflowByID(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	wf, err := s.store.Load(id)
	if err != nil {
		s.writeErrorResponse(w, "Failed to load workflow", http.StatusNotFound, err)
		return
	}

	graph, err := wfgraph.FromJSON(wf.Data, s.registry)
	if err != nil {
		s.writeErrorResponse(w, "Failed to parse stored workflow", http.StatusInternalServerError, err)
		return
	}

	observer := telemetry.NewEventBusObserver(s.telemetryProvider)
	executionID, events, err := s.engine.ExecuteStream(r.Context(), graph, nil)
	if err != nil {
		s.writeErrorResponse(w, "Failed to start workflow execution", http.StatusBadRequest, err)
		return
	}
	for event := range events {
		observer.Handle(event)
	}

	state, _ := s.engine.GetState(executionID)
	snapshot, err := wfengine.SaveSnapshot(graph, state)
	if err != nil {
		s.writeErrorResponse(w, "Workflow completed but snapshotting failed", http.StatusInternalServerError, err)
		return
	}

	s.logger.WithField("id", id).WithField("name", wf.Name).Info("workflow executed by id")
	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":       state.IsSuccessful(),
		"workflow_id":   id,
		"workflow_name": wf.Name,
		"execution_id":  executionID,
		"snapshot":      snapshot,
	})
}

// handleListNodeTypes returns every schema bound into the server's node
// registry, so a designer UI can build its node palette.
func (s *Server) handleListNodeTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var schemas interface{}
	if s.registry != nil {
		schemas = s.registry.AllSchemas()
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"node_types": schemas,
	})
}
