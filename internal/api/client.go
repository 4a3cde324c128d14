// Package api is the remote gateway to the Craveboard REST backend.
//
// Every call attaches the current session credential as a raw Authorization
// header value (no "Bearer " prefix — that is the backend's contract), and
// every failure is normalized into *Error. Detection of invalid/expired
// credentials lives here, once, so callers never re-derive it: the configured
// hook fires whatever endpoint tripped the response.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client issues requests against one backend base URL.
type Client struct {
	baseURL string
	httpc   *http.Client

	// token is read at call time, not captured at construction, so a logout
	// between requests is observed by the next request.
	token func() string

	// onCredentialInvalid runs when a response indicates an invalid/expired
	// token. Used for process-wide forced logout.
	onCredentialInvalid func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport (tests, custom timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource sets the call-time credential reader.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

// WithCredentialInvalidHook sets the forced-logout side effect.
func WithCredentialInvalidHook(fn func()) Option {
	return func(c *Client) { c.onCredentialInvalid = fn }
}

// New returns a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		token:   func() string { return "" },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL reports the configured backend root.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// doJSON sends a JSON-bodied (or bodiless) request and decodes the response
// envelope into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, query, body, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// Raw token, no scheme prefix.
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", tok)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindUnknown, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// handleErrorResponse normalizes a non-2xx response and fires the
// credential-invalid hook when the backend reports a bad token.
func (c *Client) handleErrorResponse(status int, raw []byte) error {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &envelope)

	msg := strings.TrimSpace(envelope.Message)
	if msg == "" {
		msg = strings.TrimSpace(envelope.Error)
	}
	if msg == "" {
		msg = strings.TrimSpace(http.StatusText(status))
	}
	if msg == "" {
		msg = genericErrorMessage
	}

	if credentialInvalid(status, msg) && c.onCredentialInvalid != nil {
		c.onCredentialInvalid()
	}
	return &Error{Kind: kindForStatus(status), Status: status, Message: msg}
}
