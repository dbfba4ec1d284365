// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for runtime configuration defaults.
//
// Usage:
//
//	cfg.Timeout = defaults.HTTPTimeout
//	req.Header.Set("Content-Type", defaults.ContentTypeForm)
package defaults

import "time"

// Version is the current ectf version
const Version = "0.3.0"

// ToolName is the binary and service name used in logs, traces and metrics.
const ToolName = "ectf"

// ============================================================================
// CONFIGURATION
// ============================================================================

const (
	// ConfigFileName is the default configuration file, relative to $HOME
	ConfigFileName = ".echoctf.json"

	// ConfigFileMode is the only permission set accepted on the config file
	ConfigFileMode = 0o600
)

// ============================================================================
// PLATFORM WIRE NAMES
// ============================================================================
//
// Names the echoCTF.RED web application expects on the wire. These are
// scraped/posted verbatim; changing them breaks compatibility with the
// platform.
// ============================================================================

const (
	// IdentityCookie is the session cookie issued by the platform
	IdentityCookie = "_identity-red"

	// CSRFField is the form field carrying the anti-forgery token
	CSRFField = "_csrf-red"

	// FlagField is the form field carrying the submitted flag
	FlagField = "hash"

	// TargetPageParam is the query parameter selecting a targets page
	TargetPageParam = "target-page"

	// ClaimContainer is the PJAX container the claim form lives in
	ClaimContainer = "#claim-flag"
)

// ============================================================================
// HTTP
// ============================================================================

const (
	// HTTPTimeout bounds every request sent to the platform (30s)
	HTTPTimeout = 30 * time.Second

	// DialTimeout bounds connection establishment (10s)
	DialTimeout = 10 * time.Second

	// TLSHandshakeTimeout bounds the TLS handshake (10s)
	TLSHandshakeTimeout = 10 * time.Second

	// TelemetryShutdown bounds flushing traces on exit (5s)
	TelemetryShutdown = 5 * time.Second
)

// ContentTypeForm is application/x-www-form-urlencoded
const ContentTypeForm = "application/x-www-form-urlencoded"
