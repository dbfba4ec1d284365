package httpclient

import (
	"net/http"
)

// middlewareTransport wraps a base RoundTripper and stamps a fixed
// User-Agent on every request.
type middlewareTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (m *middlewareTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid mutating the caller's request.
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", m.userAgent)
	return m.base.RoundTrip(r)
}
