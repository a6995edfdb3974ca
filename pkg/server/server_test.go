package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rtpro256/workflow-engine-core/pkg/builtinnodes"
)

func singleNodeGraphJSON(t *testing.T) []byte {
	t.Helper()
	graph := map[string]interface{}{
		"id":       "g1",
		"metadata": map[string]interface{}{"name": "single-node"},
		"nodes": []map[string]interface{}{
			{
				"id":        "n1",
				"node_type": "data_source",
				"config":    map[string]interface{}{"value": 7},
			},
		},
		"edges": []map[string]interface{}{},
	}
	body, err := json.Marshal(ExecuteRequest{Graph: mustJSON(t, graph)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHandleExecuteWorkflow_SingleNode(t *testing.T) {
	srv := newTestServer(t)
	builtinnodes.RegisterAll(srv.registry)

	body := singleNodeGraphJSON(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflow/execute", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleExecuteWorkflow(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("resp = %+v, want success:true", resp)
	}
}

func TestHandleValidateWorkflow_ValidGraph(t *testing.T) {
	srv := newTestServer(t)
	builtinnodes.RegisterAll(srv.registry)

	body := singleNodeGraphJSON(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflow/validate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleValidateWorkflow(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["valid"] != true {
		t.Errorf("resp = %+v, want valid:true", resp)
	}
}

func TestHandleValidateWorkflow_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflow/validate", bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	srv.handleValidateWorkflow(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["valid"] != false {
		t.Errorf("resp = %+v, want valid:false", resp)
	}
}

func TestHandleListNodeTypes(t *testing.T) {
	srv := newTestServer(t)
	builtinnodes.RegisterAll(srv.registry)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/node-types", nil)
	rr := httptest.NewRecorder()
	srv.handleListNodeTypes(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp map[string]interface{}
	json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["success"] != true {
		t.Errorf("resp = %+v, want success:true", resp)
	}
}

func TestHandleWorkflowsCollection_SaveAndList(t *testing.T) {
	srv := newTestServer(t)

	saveBody, _ := json.Marshal(SaveWorkflowRequest{Name: "wf", Data: json.RawMessage(`{}`)})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows", bytes.NewReader(saveBody))
	rr := httptest.NewRecorder()
	srv.handleWorkflowsCollection(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/workflows", nil)
	listRR := httptest.NewRecorder()
	srv.handleWorkflowsCollection(listRR, listReq)

	var resp map[string]interface{}
	json.Unmarshal(listRR.Body.Bytes(), &resp)
	if resp["count"] != float64(1) {
		t.Errorf("count = %v, want 1", resp["count"])
	}
}

func TestHandleGPUStatus_NoArbiterConfigured(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/gpu/status", nil)
	rr := httptest.NewRecorder()
	srv.handleGPUStatus(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}
