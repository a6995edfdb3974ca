package httpclient_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rtpro256/workflow-engine-core/pkg/config"
	"github.com/rtpro256/workflow-engine-core/pkg/httpclient"
)

// TestNamedHTTPClient_Integration builds a registry of named, pre-configured
// clients the way the server's /api/v1/httpclients route does, and checks
// each one actually authenticates against a real server with its configured
// auth scheme.
func TestNamedHTTPClient_Integration(t *testing.T) {
	basicAuthServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || username != "testuser" || password != "testpass" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("unauthorized"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("authenticated with basic auth"))
	}))
	defer basicAuthServer.Close()

	bearerServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer secret-token-123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("unauthorized"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("authenticated with bearer token"))
	}))
	defer bearerServer.Close()

	customHeaderServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "my-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("missing api key"))
			return
		}
		if r.Header.Get("User-Agent") != "MyApp/1.0" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("invalid user agent"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("custom headers validated"))
	}))
	defer customHeaderServer.Close()

	engineConfig := config.Testing()
	engineConfig.HTTPClients = []config.HTTPClientConfig{
		{
			Name:        "basic-auth-client",
			Description: "Client with basic authentication",
			AuthType:    "basic",
			Username:    "testuser",
			Password:    "testpass",
			Timeout:     30 * time.Second,
		},
		{
			Name:        "bearer-token-client",
			Description: "Client with bearer token",
			AuthType:    "bearer",
			Token:       "secret-token-123",
			Timeout:     30 * time.Second,
		},
		{
			Name:        "custom-headers-client",
			Description: "Client with custom headers",
			AuthType:    "none",
			Timeout:     30 * time.Second,
			DefaultHeaders: map[string]string{
				"X-API-Key":  "my-api-key",
				"User-Agent": "MyApp/1.0",
			},
		},
	}

	builder := httpclient.NewBuilder(*engineConfig)
	registry := httpclient.NewRegistry()

	for _, clientConfig := range engineConfig.HTTPClients {
		httpClientConfig := httpclient.FromConfigHTTPClient(clientConfig)
		client, err := builder.Build(httpClientConfig)
		if err != nil {
			t.Fatalf("Failed to build HTTP client %q: %v", clientConfig.Name, err)
		}
		if err := registry.Register(clientConfig.Name, client); err != nil {
			t.Fatalf("Failed to register HTTP client %q: %v", clientConfig.Name, err)
		}
	}

	cases := []struct {
		name       string
		clientName string
		server     *httptest.Server
		want       string
	}{
		{"basic auth client", "basic-auth-client", basicAuthServer, "authenticated with basic auth"},
		{"bearer token client", "bearer-token-client", bearerServer, "authenticated with bearer token"},
		{"custom headers client", "custom-headers-client", customHeaderServer, "custom headers validated"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := registry.Get(tc.clientName)
			if err != nil {
				t.Fatalf("failed to get client %q: %v", tc.clientName, err)
			}

			resp, err := client.Get(tc.server.URL)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read response body: %v", err)
			}
			if string(body) != tc.want {
				t.Errorf("body = %q, want %q", string(body), tc.want)
			}
		})
	}

	t.Run("non-existent client", func(t *testing.T) {
		if _, err := registry.Get("non-existent-client"); err == nil {
			t.Error("Expected error for non-existent client, got nil")
		}
	})
}

// TestHTTPClientConfig_FromConfig tests the conversion from config.HTTPClientConfig
func TestHTTPClientConfig_FromConfig(t *testing.T) {
	configClient := config.HTTPClientConfig{
		Name:                "test-client",
		Description:         "Test client",
		AuthType:            "basic",
		Username:            "user",
		Password:            "pass",
		Timeout:             60 * time.Second,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 5,
		MaxConnsPerHost:     50,
		IdleConnTimeout:     120 * time.Second,
		TLSHandshakeTimeout: 15 * time.Second,
		DisableKeepAlives:   true,
		MaxRedirects:        5,
		MaxResponseSize:     5 * 1024 * 1024,
		FollowRedirects:     false,
		DefaultHeaders: map[string]string{
			"X-Custom": "value",
		},
		DefaultQueryParams: map[string]string{
			"api_key": "secret",
		},
		BaseURL: "https://api.example.com",
	}

	httpClient := httpclient.FromConfigHTTPClient(configClient)

	if httpClient.Name != configClient.Name {
		t.Errorf("Name = %v, want %v", httpClient.Name, configClient.Name)
	}
	if httpClient.Description != configClient.Description {
		t.Errorf("Description = %v, want %v", httpClient.Description, configClient.Description)
	}
	if string(httpClient.AuthType) != configClient.AuthType {
		t.Errorf("AuthType = %v, want %v", httpClient.AuthType, configClient.AuthType)
	}
	if httpClient.Username != configClient.Username {
		t.Errorf("Username = %v, want %v", httpClient.Username, configClient.Username)
	}
	if httpClient.Password != configClient.Password {
		t.Errorf("Password = %v, want %v", httpClient.Password, configClient.Password)
	}
	if httpClient.Timeout != configClient.Timeout {
		t.Errorf("Timeout = %v, want %v", httpClient.Timeout, configClient.Timeout)
	}
	if httpClient.MaxIdleConns != configClient.MaxIdleConns {
		t.Errorf("MaxIdleConns = %v, want %v", httpClient.MaxIdleConns, configClient.MaxIdleConns)
	}
	if httpClient.BaseURL != configClient.BaseURL {
		t.Errorf("BaseURL = %v, want %v", httpClient.BaseURL, configClient.BaseURL)
	}

	// Verify maps are copied correctly
	if httpClient.DefaultHeaders["X-Custom"] != "value" {
		t.Error("DefaultHeaders not copied correctly")
	}
	if httpClient.DefaultQueryParams["api_key"] != "secret" {
		t.Error("DefaultQueryParams not copied correctly")
	}
}
