package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rtpro256/workflow-engine-core/pkg/httpclient"
	"github.com/rtpro256/workflow-engine-core/pkg/noderegistry"
	"github.com/rtpro256/workflow-engine-core/pkg/wfengine"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	registry := noderegistry.New()
	engine := wfengine.NewWithConfig(wfengine.DefaultConfig(), registry)
	srv, err := New(DefaultConfig(), engine, registry, nil, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func registerReq(name string) *http.Request {
	body, _ := json.Marshal(RegisterHTTPClientRequest{
		Name:   name,
		Config: &httpclient.ClientConfig{Description: "test client"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/httpclients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterHTTPClient_ValidRegistration(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr, registerReq("test-client-1"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body=%s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["success"] != true || resp["name"] != "test-client-1" {
		t.Errorf("resp = %+v, want success:true name:test-client-1", resp)
	}
}

func TestRegisterHTTPClient_MissingConfig(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(RegisterHTTPClientRequest{Name: "x", Config: nil})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/httpclients", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestRegisterHTTPClient_EmptyName(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(RegisterHTTPClientRequest{Name: "", Config: &httpclient.ClientConfig{}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/httpclients", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestRegisterHTTPClient_DuplicateName(t *testing.T) {
	srv := newTestServer(t)

	rr1 := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr1, registerReq("duplicate-client"))
	if rr1.Code != http.StatusCreated {
		t.Fatalf("first registration failed with status %d", rr1.Code)
	}

	rr2 := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr2, registerReq("duplicate-client"))
	if rr2.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d for duplicate registration", rr2.Code, http.StatusConflict)
	}
}

func TestListHTTPClients(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/httpclients", nil)
	rr := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["count"] != float64(0) {
		t.Errorf("count = %v, want 0", resp["count"])
	}

	names := []string{"client-1", "client-2", "client-3"}
	for _, name := range names {
		rr := httptest.NewRecorder()
		srv.handleHTTPClientsCollection(rr, registerReq(name))
		if rr.Code != http.StatusCreated {
			t.Fatalf("failed to register client %s: status %d", name, rr.Code)
		}
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/httpclients", nil)
	rr2 := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr2, req2)

	var resp2 map[string]interface{}
	json.Unmarshal(rr2.Body.Bytes(), &resp2)
	if resp2["count"] != float64(len(names)) {
		t.Errorf("count = %v, want %d", resp2["count"], len(names))
	}
}

func TestHTTPClientsCollection_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/httpclients", nil)
	rr := httptest.NewRecorder()
	srv.handleHTTPClientsCollection(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}
