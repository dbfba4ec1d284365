package session

import "errors"

// Sentinel errors for session operations.
// Callers should use errors.Is() to check for these.
var (
	// ErrInvalidInstanceURL indicates the instance URL lacks a usable
	// http(s) scheme or a host.
	ErrInvalidInstanceURL = errors.New("session: invalid instance URL")

	// ErrMissingCookie indicates an empty identity cookie.
	ErrMissingCookie = errors.New("session: identity cookie is empty")

	// ErrTransport wraps every failure to exchange a request with the
	// platform: DNS, connect, TLS, timeout, cancellation, truncated body.
	ErrTransport = errors.New("session: transport failure")

	// ErrUnauthenticated indicates the platform redirected to its login
	// page, i.e. the identity cookie is missing, expired or revoked.
	ErrUnauthenticated = errors.New("session: not authenticated")

	// ErrNotSupported marks capabilities the platform client does not
	// implement.
	ErrNotSupported = errors.New("session: operation not supported")
)
