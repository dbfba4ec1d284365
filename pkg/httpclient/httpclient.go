// Package httpclient builds the HTTP client used to talk to an echoCTF.RED
// instance: explicit finite timeouts, a public-suffix aware cookie jar,
// optional proxying and a fixed User-Agent.
package httpclient

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
)

// Config holds HTTP client configuration options.
type Config struct {
	// Timeout is the total per-request timeout (default: 30s)
	Timeout time.Duration

	// DialTimeout is the timeout for establishing connections (default: 10s)
	DialTimeout time.Duration

	// TLSHandshakeTimeout is the timeout for TLS handshake (default: 10s)
	TLSHandshakeTimeout time.Duration

	// InsecureSkipVerify skips TLS certificate verification, for self-hosted
	// instances behind self-signed certificates (default: false)
	InsecureSkipVerify bool

	// Proxy is an http(s):// or socks5(h):// proxy URL (optional)
	Proxy string

	// UserAgent is sent on every request (optional)
	UserAgent string
}

// DefaultConfig returns the defaults used by the CLI.
func DefaultConfig() Config {
	return Config{
		Timeout:             defaults.HTTPTimeout,
		DialTimeout:         defaults.DialTimeout,
		TLSHandshakeTimeout: defaults.TLSHandshakeTimeout,
	}
}

// WithTimeout returns DefaultConfig with the given total timeout.
func WithTimeout(timeout time.Duration) Config {
	cfg := DefaultConfig()
	cfg.Timeout = timeout
	return cfg
}

// New creates an HTTP client from cfg. Zero durations fall back to the
// defaults so that no request can hang indefinitely.
//
// The client:
//   - carries a cookie jar, so cookies set by the platform (its own CSRF
//     cookie) are sent back on the follow-up POST
//   - does NOT follow redirects; callers inspect 3xx responses themselves
func New(cfg Config) (*http.Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.HTTPTimeout
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = defaults.DialTimeout
	}
	if cfg.TLSHandshakeTimeout <= 0 {
		cfg.TLSHandshakeTimeout = defaults.TLSHandshakeTimeout
	}

	dialer := &net.Dialer{
		Timeout:   cfg.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSHandshakeTimeout:   cfg.TLSHandshakeTimeout,
		ResponseHeaderTimeout: cfg.Timeout,
		DialContext:           dialer.DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	if cfg.Proxy != "" {
		if err := applyProxy(transport, cfg.Proxy, cfg.DialTimeout); err != nil {
			return nil, err
		}
	}

	jar, err := NewJar()
	if err != nil {
		return nil, err
	}

	var rt http.RoundTripper = transport
	if cfg.UserAgent != "" {
		rt = &middlewareTransport{base: transport, userAgent: cfg.UserAgent}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
		Jar:       jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, nil
}

// NewJar returns an empty cookie jar using the public suffix list.
func NewJar() (http.CookieJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("httpclient: cookie jar: %w", err)
	}
	return jar, nil
}

// applyProxy wires proxyURL into transport: HTTP(S) proxies through
// Transport.Proxy, SOCKS5 through a proxy dialer.
func applyProxy(transport *http.Transport, proxyURL string, timeout time.Duration) error {
	pc, err := ParseProxyURL(proxyURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProxyConfig, err)
	}
	if pc.IsSOCKS {
		d, err := CreateSOCKSDialer(pc, timeout)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrProxyConfig, err)
		}
		transport.DialContext = d.DialContext
		return nil
	}
	transport.Proxy = http.ProxyURL(&url.URL{
		Scheme: pc.Scheme,
		Host:   pc.Address(),
		User:   pc.URL.User,
	})
	return nil
}
