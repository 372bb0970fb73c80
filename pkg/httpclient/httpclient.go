package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
	Query   url.Values
	// Jar carries the merchant's cookies so the remote session follows the
	// console session.
	Jar http.CookieJar
}

type Client struct {
	transport http.RoundTripper
	timeout   time.Duration
}

// CreateHttpClient builds a client whose transport is traced with otelhttp.
func CreateHttpClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		transport: otelhttp.NewTransport(http.DefaultTransport),
		timeout:   timeout,
	}
}

// SendRequest sends an HTTP request based on the given HttpRequest struct
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) (int, []byte, error) {
	target := req.URL
	if len(req.Query) > 0 {
		target = fmt.Sprintf("%s?%s", req.URL, req.Query.Encode())
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, target, bytes.NewReader(req.Body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	client := &http.Client{
		Transport: c.transport,
		Timeout:   c.timeout,
		Jar:       req.Jar,
	}

	response, err := client.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return response.StatusCode, body, nil
}
