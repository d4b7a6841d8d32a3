package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/academia/core"
)

var errNotConfigured = errors.New("backend base URL is not configured")

// Client talks JSON to the academy backend.
// The caller's Authorization header travels in the context; the configured token is the fallback.
type Client struct {
	baseURL string
	token   string
	rest    *rest.Client
}

func NewClient(conf *core.Config) *Client {
	return &Client{
		baseURL: conf.Backend.BaseURL,
		token:   conf.Backend.Token,
		rest:    &rest.Client{HTTPClient: &http.Client{Timeout: conf.Backend.Timeout}},
	}
}

func (c *Client) headers(ctx context.Context, method rest.Method) map[string]string {
	h := map[string]string{"Accept": "application/json"}
	if token, ok := core.AuthToken(ctx); ok {
		h["Authorization"] = token
	} else if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	if id := core.RequestID(ctx); id != "" {
		h["X-Request-ID"] = id
	}
	if method == rest.Post {
		h["Idempotency-Key"] = uuid.New().String()
	}
	return h
}

// do sends a request to endpoint (e.g. "api/payouts") and decodes the answer into out, if not nil.
// Non-2xx answers are returned as *core.BackendError.
func (c *Client) do(ctx context.Context, method rest.Method, endpoint string, in, out interface{}) error {
	if c.baseURL == "" {
		return errNotConfigured
	}

	req := rest.Request{
		Method:  method,
		BaseURL: c.baseURL + "/" + strings.TrimLeft(endpoint, "/"),
		Headers: c.headers(ctx, method),
	}
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encoding %s body", endpoint)
		}
		req.Body = body
		req.Headers["Content-Type"] = "application/json"
	}

	hreq, err := rest.BuildRequestObject(req)
	if err != nil {
		return errors.Wrapf(err, "building %s %s", method, endpoint)
	}
	hres, err := c.rest.MakeRequest(hreq.WithContext(ctx))
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, endpoint)
	}
	res, err := rest.BuildResponse(hres)
	if err != nil {
		return errors.Wrapf(err, "reading %s answer", endpoint)
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return core.NewBackendError(res.StatusCode, endpoint, errorMessage(res.Body))
	}

	if out == nil || strings.TrimSpace(res.Body) == "" {
		return nil
	}
	if err := decode(res.Body, out); err != nil {
		return errors.Wrapf(err, "decoding %s answer", endpoint)
	}
	return nil
}

// decode reads body into out, unwrapping `{"data": ...}` envelopes.
func decode(body string, out interface{}) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if strings.HasPrefix(strings.TrimSpace(body), "{") {
		if err := json.Unmarshal([]byte(body), &envelope); err == nil && len(envelope.Data) > 0 {
			return json.Unmarshal(envelope.Data, out)
		}
	}
	return json.Unmarshal([]byte(body), out)
}

// errorMessage extracts a readable message from an error answer.
func errorMessage(body string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(body)
	if len(msg) > 200 {
		msg = msg[:200] + "..."
	}
	return msg
}

// WaitReady waits for the backend to answer. Waits 100ms longer between each attempt.
func (c *Client) WaitReady(ctx context.Context, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = c.ping(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for backend")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "backend ping timeout")
	}
	return nil
}

// ping succeeds as soon as the backend answers something else than a server error.
func (c *Client) ping(ctx context.Context) error {
	err := c.do(ctx, rest.Get, "", nil, nil)
	if bErr, ok := errors.Cause(err).(*core.BackendError); ok && bErr.StatusCode < http.StatusInternalServerError {
		return nil
	}
	return err
}
