// Package adt implements the authenticated HTTP client for a SAP system's
// ADT (ABAP Development Tools) REST interface, including the CSRF token
// lifecycle, and the per-operation request builders on top of it.
package adt

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"sapadt/internal/config"
)

const (
	// maxBodySize caps how much of a response is read (32MB).
	maxBodySize = 32 * 1024 * 1024

	csrfHeader     = "X-Csrf-Token"
	csrfFetchValue = "fetch"
	// csrfRequired is the header value SAP sets on a 403 that rejected the token.
	csrfRequired = "Required"
)

// Request describes one outbound ADT exchange.
type Request struct {
	Method      string
	Path        string // endpoint path under the system base URL
	Query       url.Values
	Body        []byte
	ContentType string
	Accept      string
	Timeout     time.Duration // 0 means the client default
}

// Response is the outcome of a successful exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Client issues authenticated requests against one SAP system. The underlying
// http.Client is created once and lives as long as the Client; the Session is
// injected so callers control its lifecycle.
type Client struct {
	baseURL   string
	username  string
	password  string
	sapClient string
	timeout   time.Duration

	http    *http.Client
	session *Session
	logger  *slog.Logger
}

// NewClient creates a client for the configured SAP system.
func NewClient(cfg *config.Config, session *Session, logger *slog.Logger) *Client {
	transport := &http.Transport{
		// Compression is handled explicitly so the gzip decode path is
		// under our control for all content types ADT serves.
		DisableCompression: true,
	}
	if cfg.TLSInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in for self-signed SAP systems
	}

	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		username:  cfg.Username,
		password:  cfg.Password,
		sapClient: cfg.Client,
		timeout:   timeout,
		http:      &http.Client{Transport: transport},
		session:   session,
		logger:    logger,
	}
}

// Session returns the injected session.
func (c *Client) Session() *Session {
	return c.session
}

// Execute performs one ADT exchange. Mutating verbs acquire a CSRF token
// first if none is cached. A 403 that rejected the token triggers exactly one
// token refresh and one retry of the original request; every other failure
// class (timeouts, 5xx, network errors) propagates immediately.
func (c *Client) Execute(ctx context.Context, req Request) (*Response, error) {
	if mutating(req.Method) && c.session.Token() == "" {
		if err := c.fetchToken(ctx, req.Path); err != nil {
			return nil, err
		}
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	if tokenRejected(resp) {
		c.logger.Debug("security token rejected, re-authenticating",
			"path", req.Path,
			"status", resp.StatusCode,
		)
		if err := c.fetchToken(ctx, req.Path); err != nil {
			return nil, err
		}
		resp, err = c.do(ctx, req)
		if err != nil {
			return nil, err
		}
		// A second rejection falls through to the status check below.
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.remoteError(req, resp)
	}

	return resp, nil
}

// fetchToken performs the token bootstrap exchange: a GET to the target
// endpoint with a sentinel header asking the backend to mint a fresh token.
// Some systems emit the token even on a non-2xx reply, so the header is read
// regardless of status. Cookies are captured from the same exchange.
func (c *Client) fetchToken(ctx context.Context, path string) error {
	// The bootstrap exchange gets the same deadline as the request it serves.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return err
	}
	httpReq.Header.Set(csrfHeader, csrfFetchValue)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return NewError(AuthFailed, "token bootstrap request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()
	// The body is irrelevant here; drain it so the connection is reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	token := resp.Header.Get(csrfHeader)
	if token == "" || strings.EqualFold(token, csrfRequired) {
		return NewError(AuthFailed,
			fmt.Sprintf("no security token in bootstrap response (HTTP %d)", resp.StatusCode), nil).
			WithStatus(resp.StatusCode)
	}

	c.session.SetCredentials(token, joinCookies(resp.Header))
	c.logger.Debug("security token acquired", "status", resp.StatusCode)
	return nil
}

// do builds and issues a single request without any recovery logic.
func (c *Client) do(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if mutating(req.Method) {
		if token := c.session.Token(); token != "" {
			httpReq.Header.Set(csrfHeader, token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, NewError(TransportError,
				fmt.Sprintf("request to %s timed out after %s", req.Path, timeout), err)
		}
		return nil, NewError(TransportError, fmt.Sprintf("request to %s failed", req.Path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, NewError(TransportError, "failed to read response body", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// newHTTPRequest constructs the request with authentication, client
// identifier, and cached cookie headers.
func (c *Client) newHTTPRequest(ctx context.Context, req Request) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + req.Path)
	if err != nil {
		return nil, NewError(TransportError, "invalid request URL", err)
	}

	query := url.Values{}
	for k, vs := range req.Query {
		for _, v := range vs {
			query.Add(k, v)
		}
	}
	if c.sapClient != "" {
		query.Set("sap-client", c.sapClient)
	}
	u.RawQuery = query.Encode()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, NewError(TransportError, "failed to create request", err)
	}

	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set("Accept-Encoding", "gzip")
	httpReq.Header.Set("User-Agent", "sapadt/1.0")
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if cookies := c.session.Cookies(); cookies != "" {
		httpReq.Header.Set("Cookie", cookies)
	}

	return httpReq, nil
}

// remoteError turns a non-2xx reply into a transport error that embeds the
// remote system's own error payload when one was sent.
func (c *Client) remoteError(req Request, resp *Response) error {
	msg := fmt.Sprintf("%s %s returned HTTP %d", req.Method, req.Path, resp.StatusCode)
	if payload := strings.TrimSpace(resp.Text()); payload != "" {
		const maxPayload = 2048
		if len(payload) > maxPayload {
			payload = payload[:maxPayload]
		}
		msg = msg + ": " + payload
	}
	return NewError(TransportError, msg, nil).WithStatus(resp.StatusCode)
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = io.LimitReader(resp.Body, maxBodySize)
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}
	return io.ReadAll(reader)
}

// mutating reports whether the verb requires a security token.
func mutating(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	default:
		return true
	}
}

// tokenRejected reports whether the reply is the backend refusing the cached
// security token, as opposed to an ordinary authorization failure.
func tokenRejected(resp *Response) bool {
	return resp.StatusCode == http.StatusForbidden &&
		strings.EqualFold(resp.Header.Get(csrfHeader), csrfRequired)
}

// joinCookies flattens Set-Cookie headers into a single Cookie header value.
func joinCookies(header http.Header) string {
	values := header.Values("Set-Cookie")
	if len(values) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(values))
	for _, v := range values {
		if i := strings.Index(v, ";"); i >= 0 {
			v = v[:i]
		}
		if v = strings.TrimSpace(v); v != "" {
			pairs = append(pairs, v)
		}
	}
	return strings.Join(pairs, "; ")
}
