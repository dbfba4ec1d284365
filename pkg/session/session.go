// Package session talks to one echoCTF.RED instance on behalf of a player
// identified by their _identity-red cookie.
//
// Every operation follows the platform's form flow: load the page that
// hosts the form, read its CSRF token, post the form. A Session holds no
// state beyond its base URL, cookie and HTTP client.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Rising-Edge-Group/ectf-public/pkg/classify"
	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/httpclient"
	"github.com/Rising-Edge-Group/ectf-public/pkg/iohelper"
	"github.com/Rising-Edge-Group/ectf-public/pkg/metrics"
)

// Target is one entry of the targets listing.
type Target = classify.Target

// Session is an authenticated client for one platform instance. It is
// safe for concurrent use once constructed.
type Session struct {
	base   *url.URL
	cookie string

	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// New creates a Session for instanceURL. Only the scheme and host of
// instanceURL are kept; path, query and fragment are dropped.
func New(instanceURL, cookie string, opts ...Option) (*Session, error) {
	base, err := baseURL(instanceURL)
	if err != nil {
		return nil, err
	}
	if cookie == "" {
		return nil, ErrMissingCookie
	}

	s := &Session{
		base:   base,
		cookie: cookie,
		logger: discardLogger(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		cfg := httpclient.DefaultConfig()
		cfg.UserAgent = defaults.ToolName + "/" + defaults.Version
		if s.client, err = httpclient.New(cfg); err != nil {
			return nil, err
		}
	}
	if s.client.Jar == nil {
		jar, err := httpclient.NewJar()
		if err != nil {
			return nil, err
		}
		c := *s.client
		c.Jar = jar
		s.client = &c
	}
	s.client.Jar.SetCookies(s.base, []*http.Cookie{{
		Name:     defaults.IdentityCookie,
		Value:    cookie,
		Path:     "/",
		HttpOnly: true,
	}})

	return s, nil
}

// baseURL reduces raw to scheme://host.
func baseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInstanceURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("%w: %q needs an http or https scheme", ErrInvalidInstanceURL, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidInstanceURL, raw)
	}
	return &url.URL{Scheme: scheme, Host: u.Host}, nil
}

// BaseURL returns the scheme://host all requests are sent to.
func (s *Session) BaseURL() string {
	return s.base.String()
}

// Spin asks the platform to restart the target with the given ID. The
// platform's answer is not inspected: any HTTP response counts as sent.
func (s *Session) Spin(ctx context.Context, targetID int) (err error) {
	ctx, span := s.tracer.Start(ctx, "session.Spin",
		trace.WithAttributes(attribute.Int("ectf.target_id", targetID)))
	defer func() { s.finish(span, "spin", err) }()

	path := "/target/" + strconv.Itoa(targetID)
	page, err := s.get(ctx, path, nil)
	if err != nil {
		return err
	}
	token, err := classify.ExtractCSRFToken(page)
	if err != nil {
		return fmt.Errorf("spin target %d: %w", targetID, err)
	}

	form := url.Values{defaults.CSRFField: {token}}
	if _, err := s.post(ctx, path+"/spin", form, nil); err != nil {
		return err
	}
	s.metrics.ObserveSpin()
	s.logger.Info("spin requested", "target_id", targetID)
	return nil
}

// ListTargets returns every target of the listing, in page order and then
// document order.
//
// The first page is the one the platform serves without a page parameter.
// Its pager, when present, gives the zero-based index N of the last page;
// pages 2..N+1 are then fetched one after another.
func (s *Session) ListTargets(ctx context.Context) (targets []Target, err error) {
	ctx, span := s.tracer.Start(ctx, "session.ListTargets")
	defer func() {
		span.SetAttributes(attribute.Int("ectf.targets", len(targets)))
		s.finish(span, "targets", err)
	}()

	first, err := s.get(ctx, "/targets", nil)
	if err != nil {
		return nil, err
	}
	last, paged, err := classify.LastPageIndex(first)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}

	pages := 1
	if paged {
		pages = last + 1
	}
	span.SetAttributes(attribute.Int("ectf.pages", pages))

	for p := 1; p <= pages; p++ {
		page := first
		if p > 1 {
			q := url.Values{defaults.TargetPageParam: {strconv.Itoa(p)}}
			if page, err = s.get(ctx, "/targets", q); err != nil {
				return nil, err
			}
		}
		found, err := classify.ParseTargets(page)
		if err != nil {
			return nil, fmt.Errorf("list targets: page %d: %w", p, err)
		}
		targets = append(targets, found...)
	}

	s.metrics.SetTargetsListed(len(targets))
	s.logger.Debug("targets listed", "pages", pages, "count", len(targets))
	return targets, nil
}

// IsActive would report whether a target is running. The platform exposes
// no reliable signal for it.
func (s *Session) IsActive(ctx context.Context, targetID int) (bool, error) {
	return false, fmt.Errorf("is-active for target %d: %w", targetID, ErrNotSupported)
}

// ClaimFlag submits flag through the dashboard's PJAX claim form and
// classifies the notification the dashboard shows afterwards.
func (s *Session) ClaimFlag(ctx context.Context, flag string) (outcome classify.Outcome, err error) {
	ctx, span := s.tracer.Start(ctx, "session.ClaimFlag")
	defer func() {
		span.SetAttributes(attribute.String("ectf.outcome", outcome.String()))
		s.finish(span, "claim", err)
	}()

	page, err := s.get(ctx, "/dashboard", nil)
	if err != nil {
		return classify.Unknown, err
	}
	token, err := classify.ExtractCSRFToken(page)
	if err != nil {
		return classify.Unknown, fmt.Errorf("claim: %w", err)
	}

	form := url.Values{
		defaults.CSRFField: {token},
		defaults.FlagField: {flag},
	}
	headers := http.Header{
		"X-Csrf-Token":     {token},
		"X-Pjax":           {"true"},
		"X-Pjax-Container": {defaults.ClaimContainer},
		"X-Requested-With": {"XMLHttpRequest"},
	}
	if _, err := s.post(ctx, "/claim", form, headers); err != nil {
		return classify.Unknown, err
	}

	after, err := s.get(ctx, "/dashboard", nil)
	if err != nil {
		return classify.Unknown, err
	}

	outcome = classify.ClassifyClaim(after, flag)
	s.metrics.ObserveClaim(outcome.String(), outcome.Accepted())
	s.logger.Info("claim classified", "outcome", outcome.String())
	return outcome, nil
}

// finish closes an operation span and counts failures.
func (s *Session) finish(span trace.Span, operation string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.ObserveError(operation)
		s.logger.Debug("operation failed", "operation", operation, "error", err)
	}
	span.End()
}

func (s *Session) get(ctx context.Context, path string, query url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint(path, query), nil)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", path, err)
	}
	return s.do(req, iohelper.PageMaxBodySize)
}

func (s *Session) post(ctx context.Context, path string, form url.Values, headers http.Header) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(path, nil), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("POST %s: %w", path, err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", defaults.ContentTypeForm)
	return s.do(req, iohelper.FragmentMaxBodySize)
}

func (s *Session) endpoint(path string, query url.Values) string {
	u := *s.base
	u.Path = path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends req and returns the response body, read up to maxBody bytes.
// Non-2xx statuses are not errors; a redirect to the login page is.
func (s *Session) do(req *http.Request, maxBody int64) (string, error) {
	path := req.URL.Path
	start := time.Now()

	resp, err := s.client.Do(req)
	if err != nil {
		s.metrics.ObserveRequest(req.Method, path, 0, time.Since(start))
		return "", fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, path, err)
	}
	defer iohelper.DrainAndClose(resp.Body)

	data, err := iohelper.ReadBody(resp.Body, maxBody)
	body := string(data)
	elapsed := time.Since(start)
	s.metrics.ObserveRequest(req.Method, path, resp.StatusCode, elapsed)
	s.logger.Debug("request",
		"method", req.Method,
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", elapsed,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: reading body: %w", ErrTransport, req.Method, path, err)
	}

	if isLoginRedirect(resp) {
		return "", fmt.Errorf("%w: %s %s redirected to %s", ErrUnauthenticated, req.Method, path, resp.Header.Get("Location"))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.logger.Debug("unexpected status", "method", req.Method, "path", path, "status", resp.StatusCode)
	}
	return body, nil
}

func isLoginRedirect(resp *http.Response) bool {
	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		return false
	}
	loc, err := resp.Location()
	if err != nil {
		return false
	}
	return strings.HasPrefix(loc.Path, "/login")
}
