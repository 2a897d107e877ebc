package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fleet-backend/internal/metrics"
)

const (
	DefaultRetries = 3
	DefaultDelay   = time.Second
)

var (
	ErrHTMLResponse = errors.New("received HTML response instead of JSON")
	ErrServer       = errors.New("server error")
)

// ServerError is returned for 530 and every 5xx status.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}

func (e *ServerError) Is(target error) bool {
	return target == ErrServer
}

// Client issues requests and retries retryable failures with a doubling
// delay. The sleep between attempts does not watch the request context.
type Client struct {
	HTTP    *http.Client
	Retries int
	Delay   time.Duration

	// Sleep is swapped out in tests.
	Sleep func(time.Duration)
}

func NewClient() *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Retries: DefaultRetries,
		Delay:   DefaultDelay,
		Sleep:   time.Sleep,
	}
}

// Do sends req. A non-ok response with an HTML body, a 530 or any 5xx, and
// transport errors are retried; other responses (4xx included) are returned
// as they are for the caller to inspect. After the last attempt the last
// error is returned.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.do(ctx, req, c.Retries, c.Delay)
}

func (c *Client) do(ctx context.Context, req *http.Request, retries int, delay time.Duration) (*http.Response, error) {
	resp, err := c.attempt(ctx, req)
	if err == nil {
		return resp, nil
	}
	if retries <= 0 {
		return nil, err
	}

	metrics.FetchRetries.WithLabelValues(retryReason(err)).Inc()
	c.sleep(delay)

	return c.do(ctx, req, retries-1, delay*2)
}

func (c *Client) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	r, err := rewind(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
			drain(resp)
			return nil, ErrHTMLResponse
		}
		if resp.StatusCode == 530 || resp.StatusCode >= 500 {
			drain(resp)
			return nil, &ServerError{StatusCode: resp.StatusCode}
		}
	}

	return resp, nil
}

// rewind clones req with a fresh body so every attempt sends the payload.
func rewind(ctx context.Context, req *http.Request) (*http.Request, error) {
	r := req.Clone(ctx)
	if req.Body == nil || req.Body == http.NoBody {
		return r, nil
	}
	if req.GetBody == nil {
		return nil, errors.New("fetch: request body cannot be replayed, build it with a bytes/strings reader")
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("fetch: rewind body: %w", err)
	}
	r.Body = body
	return r, nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func retryReason(err error) string {
	switch {
	case errors.Is(err, ErrHTMLResponse):
		return "html"
	case errors.Is(err, ErrServer):
		return "server"
	default:
		return "transport"
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) sleep(d time.Duration) {
	if c.Sleep == nil {
		time.Sleep(d)
		return
	}
	c.Sleep(d)
}
