package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// Supported proxy schemes
var supportedProxySchemes = map[string]bool{
	"http":    true,
	"https":   true,
	"socks5":  true,
	"socks5h": true, // SOCKS5 with remote DNS resolution
}

// ProxyConfig holds a parsed proxy URL.
type ProxyConfig struct {
	URL         *url.URL
	Scheme      string
	Host        string
	Port        string
	IsSOCKS     bool
	IsDNSRemote bool // socks5h: resolve names on the proxy side
}

// ParseProxyURL validates and parses a proxy URL string. A missing scheme
// defaults to http://, a missing port to the scheme's usual one
// (8080 for http, 8443 for https, 1080 for SOCKS).
func ParseProxyURL(proxyURL string) (*ProxyConfig, error) {
	if proxyURL == "" {
		return nil, fmt.Errorf("empty proxy URL")
	}
	if !strings.Contains(proxyURL, "://") {
		proxyURL = "http://" + proxyURL
	}

	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !supportedProxySchemes[scheme] {
		return nil, fmt.Errorf("unsupported proxy scheme '%s', supported: http, https, socks5, socks5h", scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return nil, fmt.Errorf("proxy URL missing host")
	}
	port := parsed.Port()
	if port == "" {
		switch scheme {
		case "http":
			port = "8080"
		case "https":
			port = "8443"
		default:
			port = "1080"
		}
	}

	return &ProxyConfig{
		URL:         parsed,
		Scheme:      scheme,
		Host:        host,
		Port:        port,
		IsSOCKS:     strings.HasPrefix(scheme, "socks"),
		IsDNSRemote: scheme == "socks5h",
	}, nil
}

// Address returns the proxy address in host:port format
func (p *ProxyConfig) Address() string {
	if p == nil {
		return ""
	}
	return net.JoinHostPort(p.Host, p.Port)
}

// ContextDialer is the dialer shape http.Transport.DialContext expects.
type ContextDialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// timeoutDialer bounds each dial through the proxy with a timeout. With
// resolveLocally set, hostnames are resolved before the proxy sees them.
type timeoutDialer struct {
	dialer         proxy.ContextDialer
	timeout        time.Duration
	resolveLocally bool
}

func (t *timeoutDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	if t.resolveLocally {
		resolved, err := resolveAddress(ctx, address)
		if err != nil {
			return nil, fmt.Errorf("proxy dial: %w", err)
		}
		address = resolved
	}
	conn, err := t.dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("proxy dial: %w", err)
	}
	return conn, nil
}

// resolveAddress replaces the host of a host:port address with its first
// resolved IP. IP literals are returned unchanged.
func resolveAddress(ctx context.Context, address string) (string, error) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", err
	}
	if net.ParseIP(host) != nil {
		return address, nil
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", err
	}
	if len(addrs) == 0 {
		return "", fmt.Errorf("no addresses for %s", host)
	}
	return net.JoinHostPort(addrs[0].IP.String(), port), nil
}

// CreateSOCKSDialer creates a SOCKS5 dialer for config. For socks5 the
// target hostname is resolved locally; for socks5h it is handed to the
// proxy unresolved.
func CreateSOCKSDialer(config *ProxyConfig, timeout time.Duration) (ContextDialer, error) {
	if config == nil || !config.IsSOCKS {
		return nil, fmt.Errorf("not a SOCKS proxy")
	}

	proxyURL := &url.URL{
		Scheme: "socks5",
		Host:   config.Address(),
		User:   config.URL.User,
	}

	d, err := proxy.FromURL(proxyURL, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS dialer: %w", err)
	}
	cd, ok := d.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("SOCKS dialer does not support contexts")
	}
	return &timeoutDialer{dialer: cd, timeout: timeout, resolveLocally: !config.IsDNSRemote}, nil
}
