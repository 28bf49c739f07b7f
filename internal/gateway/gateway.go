// ABOUTME: Request gateway for the admin backend API
// ABOUTME: Attaches the session token, normalizes results, invalidates on 401/403

package gateway

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/markalston/moto-admin/internal/session"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryDelay = 200 * time.Millisecond
)

// Request describes one backend call. Path is appended to the base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   Body
	Header http.Header

	// Anonymous requests carry no token and never invalidate the session
	Anonymous bool
	// Fallback replaces the generic failure text when the backend gives none
	Fallback string
}

// Options configures a Gateway
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Gateway is the single path between the console and the backend
type Gateway struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Manager
	retries    int
	retryDelay time.Duration

	probe singleflight.Group
}

// New creates a gateway bound to a session manager
func New(sess *session.Manager, opts Options) *Gateway {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	delay := opts.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	retries := opts.Retries
	if retries < 0 {
		retries = 0
	}

	return &Gateway{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: client,
		session:    sess,
		retries:    retries,
		retryDelay: delay,
	}
}

// Session returns the manager the gateway reads tokens from
func (g *Gateway) Session() *session.Manager {
	return g.session
}

// BaseURL returns the configured API root
func (g *Gateway) BaseURL() string {
	return g.baseURL
}

// Do performs the request and never returns a Go error: every outcome is an Envelope.
func (g *Gateway) Do(ctx context.Context, r Request) Envelope {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	var contentType string
	if r.Body != nil {
		var err error
		payload, contentType, err = r.Body.Encode()
		if err != nil {
			slog.Debug("Request body rejected", "method", method, "path", r.Path, "error", err)
			return failure(0, err.Error())
		}
	}

	var token string
	if !r.Anonymous {
		token = g.session.Token(ctx)
	}

	header := buildHeader(token, r.Body, r.Header)
	if r.Body != nil && r.Body.Multipart() {
		header.Set("Content-Type", contentType)
	}

	target := g.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	requestID := header.Get("X-Request-ID")
	start := time.Now()
	resp, err := g.send(ctx, method, target, header, payload)
	if err != nil {
		slog.Debug("Request failed",
			"method", method, "path", r.Path, "request_id", requestID,
			"duration", time.Since(start), "error", err)
		return failure(0, MsgNetworkError)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Debug("Failed to read response body", "path", r.Path, "error", err)
		body = nil
	}

	slog.Debug("Request completed",
		"method", method, "path", r.Path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if !isSuccess(resp.StatusCode) {
		if isAuthFailure(resp.StatusCode) && !r.Anonymous {
			g.session.Invalidate(ctx, session.Event{
				Name:   session.EventInvalidToken,
				Reason: method + " " + r.Path,
				Status: resp.StatusCode,
			})
		}
		fallback := r.Fallback
		if fallback == "" {
			fallback = MsgRequestFailed
		}
		return failure(resp.StatusCode, errorMessage(body, fallback))
	}

	if len(bytes.TrimSpace(body)) > 0 && !gjson.ValidBytes(body) {
		return failure(resp.StatusCode, MsgInvalidResponse)
	}
	return success(resp.StatusCode, body)
}

// send performs one HTTP exchange. GETs are retried while no response arrives.
func (g *Gateway) send(ctx context.Context, method, target string, header http.Header, payload []byte) (*http.Response, error) {
	attempt := func() (*http.Response, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, err
		}
		req.Header = header.Clone()
		return g.httpClient.Do(req)
	}

	if method != http.MethodGet || g.retries == 0 {
		return attempt()
	}

	var resp *http.Response
	err := retry.Do(
		func() error {
			var err error
			resp, err = attempt()
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(g.retries+1)),
		retry.Delay(g.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Debug("Retrying request", "url", target, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// buildHeader assembles defaults first and caller headers last. Every request is
// sent as JSON except multipart bodies, which never get an explicit Content-Type.
func buildHeader(token string, body Body, extra http.Header) http.Header {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	h.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	multipart := body != nil && body.Multipart()
	if !multipart {
		h.Set("Content-Type", "application/json")
	}

	for k, vals := range extra {
		h.Del(k)
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	if multipart {
		h.Del("Content-Type")
	}
	return h
}

// errorMessage picks the backend's error text: "error", then "message", then fallback
func errorMessage(body []byte, fallback string) string {
	if !gjson.ValidBytes(body) {
		return fallback
	}
	parsed := gjson.ParseBytes(body)
	for _, key := range []string{"error", "message"} {
		if v := parsed.Get(key); v.Exists() && strings.TrimSpace(v.String()) != "" {
			return v.String()
		}
	}
	return fallback
}
