// Package security provides SSRF (server-side request forgery) protection
// for outbound HTTP requests made by the workflow engine, plus sentinel
// errors for security failures.
//
// # Overview
//
// SSRFProtection checks a URL before a request is sent. The package holds no
// other validators: input validation, output sanitisation, rate limiting,
// access control and policy enforcement are not part of it.
//
// # Checks
//
//   - Scheme: only the configured schemes (default http and https)
//   - Domains: an optional allowlist and a blocklist, matched against the
//     exact hostname (subdomains are not matched)
//   - Localhost: loopback addresses, 0.0.0.0 and the name "localhost"
//   - Private ranges: 10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16, fc00::/7
//   - Link-local: 169.254.0.0/16 and fe80::/10
//   - Cloud metadata: 169.254.169.254, fd00:ec2::254, metadata.google.internal
//     and metadata.azure.com
//
// Each address class can be switched off in SSRFConfig. A hostname that is
// not an IP literal is resolved and every resolved address is checked; a
// hostname that does not resolve passes.
//
// # Basic Usage
//
//	import "github.com/rtpro256/workflow-engine-core/pkg/security"
//
//	// Every check enabled, http and https allowed
//	protection := security.NewSSRFProtection()
//	if err := protection.ValidateURL(url); err != nil {
//	    return fmt.Errorf("URL not allowed: %w", err)
//	}
//
//	// Custom configuration
//	protection = security.NewSSRFProtectionWithConfig(security.SSRFConfig{
//	    AllowedSchemes:     []string{"https"},
//	    BlockPrivateIPs:    true,
//	    BlockLocalhost:     false,
//	    BlockLinkLocal:     true,
//	    BlockCloudMetadata: true,
//	    AllowedDomains:     []string{"api.example.com"},
//	})
//
// # Errors
//
// errors.go declares sentinel errors for callers to use; ValidateURL returns
// its own formatted errors and does not wrap these sentinels.
//
// # Thread Safety
//
// An SSRFProtection is not modified after construction, so ValidateURL can
// be called concurrently from multiple goroutines.
package security
