package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/medreminder/internal/common"
	"github.com/dmitrijs2005/medreminder/internal/logging"
	"github.com/google/uuid"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a single round trip when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// maxRetries is the number of repeats allowed after a successful refresh.
const maxRetries = 1

var ErrInvalidBaseURL = errors.New("invalid base URL")

// TokenStore is the part of the credential store the client depends on.
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	UpdateTokens(ctx context.Context, access, refresh string) error
	ClearSession(ctx context.Context) error
}

// Request describes one API call. Path is appended to the base URL as is
// and may carry a query string.
type Request struct {
	Method       string
	Path         string
	Body         any
	Headers      map[string]string
	RequiresAuth bool
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	logger  logging.Logger

	refreshGroup singleflight.Group
}

// NewHTTPClient returns a client for the API at baseURL. A non-positive
// timeout selects DefaultTimeout.
func NewHTTPClient(baseURL string, timeout time.Duration, store TokenStore, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		logger:  logger,
	}, nil
}

// Do sends req and returns the parsed JSON body, or nil when the body is
// empty or not JSON. Authentication failures on authenticated requests
// trigger one token refresh and one repeat of the request.
func (c *HTTPClient) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	ctx = slogctx.Append(ctx, "request_id", uuid.NewString(), "method", req.Method, "path", req.Path)

	for attempt := 0; ; attempt++ {
		data, token, err := c.roundTrip(ctx, req)
		if err == nil {
			return data, nil
		}

		var herr *HTTPError
		if attempt >= maxRetries || !req.RequiresAuth || !errors.As(err, &herr) || !herr.authFailure() {
			return nil, err
		}

		c.logger.Info(ctx, "request rejected, refreshing access token", "status", herr.Status)
		if !c.refresh(ctx, token) {
			return nil, err
		}
	}
}

// DoJSON is Do followed by decoding the body into out. out is left
// untouched when the body is empty.
func (c *HTTPClient) DoJSON(ctx context.Context, req Request, out any) error {
	data, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *HTTPClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, RequiresAuth: true})
}

func (c *HTTPClient) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body, RequiresAuth: true})
}

func (c *HTTPClient) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body, RequiresAuth: true})
}

func (c *HTTPClient) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body, RequiresAuth: true})
}

func (c *HTTPClient) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path, RequiresAuth: true})
}

// roundTrip performs exactly one HTTP exchange. It also returns the access
// token it sent so a later refresh can tell whether the token has changed.
func (c *HTTPClient) roundTrip(ctx context.Context, req Request) (json.RawMessage, string, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s %s body: %w", req.Method, req.Path, err)
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, "", fmt.Errorf("build %s %s: %w", req.Method, req.Path, err)
	}

	hreq.Header.Set(common.HeaderContentType, common.MIMEApplicationJSON)
	hreq.Header.Set(common.HeaderAccept, common.MIMEApplicationJSON)
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}

	var token string
	if req.RequiresAuth {
		// A missing token is not an error here; the server decides.
		token, err = c.store.AccessToken(ctx)
		if err != nil {
			c.logger.Warn(ctx, "access token unavailable, sending request unauthenticated", "error", err)
			token = ""
		}
		if token != "" {
			hreq.Header.Set(common.HeaderAuthorization, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, token, fmt.Errorf("%s %s: %w", req.Method, req.Path, ctxErr)
		}
		c.logger.Warn(ctx, "request failed", "error", err)
		return nil, token, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data := readJSON(resp.Body)
	c.logger.Debug(ctx, "request completed", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, token, nil
	}
	return nil, token, newHTTPError(resp.StatusCode, data)
}

// readJSON returns the body when it is a JSON value other than null.
func readJSON(r io.Reader) json.RawMessage {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.RawMessage(raw)
}
