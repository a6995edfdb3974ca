package builtinnodes_test

import (
	"testing"
)

func TestHTTPRequest_NoURLFails(t *testing.T) {
	r := registry(t)
	n := build(t, r, "http_request", map[string]interface{}{})
	result := n.Execute(nil, newCtx())
	if result.Success {
		t.Fatalf("expected failure when no url is configured or provided")
	}
}

func TestHTTPRequest_SSRFBlocksLocalhostByDefault(t *testing.T) {
	r := registry(t)
	n := build(t, r, "http_request", map[string]interface{}{"url": "http://127.0.0.1:9/"})
	result := n.Execute(nil, newCtx())
	if result.Success {
		t.Fatalf("expected SSRF validation to reject a loopback URL by default")
	}
}

func TestHTTPRequest_URLInputOverridesConfig(t *testing.T) {
	r := registry(t)
	n := build(t, r, "http_request", map[string]interface{}{"url": "http://127.0.0.1:9/"})
	result := n.Execute(map[string]interface{}{"url": "http://169.254.169.254/latest/meta-data/"}, newCtx())
	if result.Success {
		t.Fatalf("expected SSRF validation to reject a cloud metadata URL by default")
	}
}
