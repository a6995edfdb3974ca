package builtinnodes

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/node"
	"github.com/rtpro256/workflow-engine-core/pkg/portschema"
	"github.com/rtpro256/workflow-engine-core/pkg/security"
)

const defaultMaxResponseBytes = 10 * 1024 * 1024

// HTTPRequest performs an outbound HTTP call, zero-trust by default: every
// request is validated against security.SSRFProtection before it leaves
// the process, and a response larger than maxResponseBytes is rejected
// rather than silently truncated.
type HTTPRequest struct {
	method           string
	url              string
	headers          map[string]string
	maxResponseBytes int64
	timeout          time.Duration

	protection *security.SSRFProtection

	mu     sync.Mutex
	client *http.Client
}

func httpRequestSchema() portschema.NodeSchema {
	return portschema.NodeSchema{
		NodeType:    "http_request",
		DisplayName: "HTTP Request",
		Category:    "integration",
		Version:     "1.0.0",
		Inputs: []portschema.Port{
			{Name: "url", Direction: portschema.DirectionIn, DataType: portschema.DataTypeString},
			{Name: "body", Direction: portschema.DirectionIn, DataType: portschema.DataTypeString},
		},
		Outputs: []portschema.Port{
			{Name: "status_code", Direction: portschema.DirectionOut, DataType: portschema.DataTypeInteger},
			{Name: "body", Direction: portschema.DirectionOut, DataType: portschema.DataTypeString},
		},
	}
}

func newHTTPRequest(nodeID string, config map[string]interface{}) (node.Node, error) {
	url, _ := config["url"].(string)

	method := "GET"
	if m, ok := config["method"].(string); ok && m != "" {
		method = strings.ToUpper(m)
	}

	headers := map[string]string{}
	if raw, ok := config["headers"].(map[string]interface{}); ok {
		for k, v := range raw {
			if s, ok := v.(string); ok {
				headers[k] = s
			}
		}
	}

	maxResponseBytes := int64(defaultMaxResponseBytes)
	if v, ok := config["max_response_bytes"].(int); ok && v > 0 {
		maxResponseBytes = int64(v)
	}

	timeout := 30 * time.Second
	if v, ok := config["timeout_ms"].(int); ok && v > 0 {
		timeout = time.Duration(v) * time.Millisecond
	}

	ssrfConfig := security.DefaultSSRFConfig()
	if allowed, ok := config["allowed_domains"].([]interface{}); ok {
		for _, d := range allowed {
			if s, ok := d.(string); ok {
				ssrfConfig.AllowedDomains = append(ssrfConfig.AllowedDomains, s)
			}
		}
	}

	return &HTTPRequest{
		method:           method,
		url:              url,
		headers:          headers,
		maxResponseBytes: maxResponseBytes,
		timeout:          timeout,
		protection:       security.NewSSRFProtectionWithConfig(ssrfConfig),
	}, nil
}

func (h *HTTPRequest) Schema() portschema.NodeSchema { return httpRequestSchema() }

func (h *HTTPRequest) Execute(inputs map[string]interface{}, ctx node.ExecutionContext) node.ExecutionResult {
	return node.Timed(func() node.ExecutionResult {
		target := h.url
		if override, ok := inputs["url"].(string); ok && override != "" {
			target = override
		}
		if target == "" {
			return node.ExecutionResult{Success: false, Error: "http_request node: no url configured or provided"}
		}
		if err := h.protection.ValidateURL(target); err != nil {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("URL validation failed: %v", err)}
		}

		var bodyReader io.Reader
		if b, ok := inputs["body"].(string); ok && b != "" {
			bodyReader = strings.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx.Context, h.method, target, bodyReader)
		if err != nil {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("failed to build request: %v", err)}
		}
		for k, v := range h.headers {
			req.Header.Set(k, v)
		}

		resp, err := h.clientFor().Do(req)
		if err != nil {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("request failed: %v", err), Metadata: node.ResultMetadata{Retryable: true}}
		}
		defer resp.Body.Close()

		limited := io.LimitReader(resp.Body, h.maxResponseBytes+1)
		body, err := io.ReadAll(limited)
		if err != nil {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("failed to read response body: %v", err)}
		}
		if int64(len(body)) > h.maxResponseBytes {
			return node.ExecutionResult{Success: false, Error: fmt.Sprintf("response body exceeds %d bytes", h.maxResponseBytes)}
		}

		return node.ExecutionResult{Success: true, Outputs: map[string]interface{}{
			"status_code": resp.StatusCode,
			"body":        string(body),
		}}
	})
}

// clientFor lazily builds the shared *http.Client, pooling connections the
// way pkg/executor's HTTPExecutor does, and re-validating redirect targets
// against the same SSRF policy as the initial request.
func (h *HTTPRequest) clientFor() *http.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.client != nil {
		return h.client
	}
	h.client = &http.Client{
		Timeout: h.timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (max 10)")
			}
			return h.protection.ValidateURL(req.URL.String())
		},
	}
	return h.client
}
