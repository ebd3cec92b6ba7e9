package restclient

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultRetries = 3

	maxErrorBody = 64 << 10
)

type Options struct {
	// BaseURL is the collection URL of the upstream resource, e.g. http://localhost:8080/v1/movieinfos.
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts after a retryable failure. Zero disables retries.
	Retries uint64
	Logger  *slog.Logger
}

type client struct {
	baseURL *url.URL
	http    *http.Client
	retries uint64
	logger  *slog.Logger
}

func newClient(opts Options) (*client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, fmt.Errorf("restclient: base url is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("restclient: parse base url: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost:   16,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		retries: opts.Retries,
		logger:  logger,
	}, nil
}

// get issues a GET against the base URL extended with path segments and query.
func (c *client) get(ctx context.Context, query url.Values, segments ...string) (*http.Response, error) {
	endpoint := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	return c.http.Do(req)
}

// readErrorBody returns the upstream error text, falling back to the status text for empty bodies.
func readErrorBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return http.StatusText(resp.StatusCode)
	}
	return string(b)
}
