// Package server provides HTTP API routes for the workflow engine,
// including HTTP client management endpoints.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/rtpro256/workflow-engine-core/pkg/httpclient"
	"github.com/rtpro256/workflow-engine-core/pkg/types"
)

// RegisterHTTPClientRequest represents the request body for registering an
// HTTP client. Name is both the ClientConfig name and the registry key.
type RegisterHTTPClientRequest struct {
	Name   string                   `json:"name"`
	Config *httpclient.ClientConfig `json:"config"`
}

// handleHTTPClientsCollection handles GET (list) and POST (register) on
// /api/v1/httpclients.
func (s *Server) handleHTTPClientsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients := s.httpClientRegistry.List()
		s.writeJSONResponse(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"clients": clients,
			"count":   len(clients),
		})
	case http.MethodPost:
		s.handleRegisterHTTPClient(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRegisterHTTPClient builds a named, pre-configured HTTP client via
// httpclient.NewBuilder(...).Build(...) and adds it to the registry.
func (s *Server) handleRegisterHTTPClient(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read request body", http.StatusBadRequest, err)
		return
	}

	var req RegisterHTTPClientRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeErrorResponse(w, "Failed to parse request", http.StatusBadRequest, err)
		return
	}

	if req.Name == "" {
		s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "name is required"})
		return
	}
	if req.Config == nil {
		s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": "config is required"})
		return
	}
	req.Config.Name = req.Name
	req.Config.ApplyDefaults()
	if err := req.Config.Validate(); err != nil {
		s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}

	builder := httpclient.NewBuilder(types.DefaultConfig())
	client, err := builder.Build(req.Config)
	if err != nil {
		s.writeJSONResponse(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "failed to build http client: " + err.Error(),
		})
		return
	}

	if err := s.httpClientRegistry.Register(req.Name, client); err != nil {
		s.writeJSONResponse(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "failed to register http client: " + err.Error(),
		})
		return
	}

	s.logger.WithField("name", req.Name).Info("http client registered")
	s.writeJSONResponse(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"name":    req.Name,
	})
}
