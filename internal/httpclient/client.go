package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// RequestConfig is the per-call configuration of a GET request.
type RequestConfig struct {
	BaseURL string
	Params  Params
	Headers map[string]string
}

// ResolvedConfig is the configuration a request was actually sent with.
type ResolvedConfig struct {
	RequestConfig
	URL string
}

// Response is the envelope returned by Get.
type Response[T any] struct {
	Data       T
	Status     int
	StatusText string
	Headers    map[string]string
	Config     ResolvedConfig
}

// Client is a thin GET-only wrapper around a resty client. It never retries
// and sets no timeout beyond the one it was constructed with.
type Client struct {
	http *resty.Client
}

type Options struct {
	// Timeout is applied to the whole exchange. Zero means no timeout.
	Timeout time.Duration
	Headers map[string]string
	Proxy   string
}

func NewClient(opts Options) *Client {
	rc := resty.New().SetRetryCount(0)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	for name, value := range opts.Headers {
		rc.SetHeader(name, value)
	}
	if opts.Proxy != "" {
		rc.SetProxy(opts.Proxy)
	}

	return &Client{http: rc}
}

func (c *Client) Close() error {
	return c.http.Close()
}

// Get issues a GET request for rawURL and decodes the JSON body into T.
//
// Non-2xx responses fail with *RequestError without touching the body.
// Network failures fail with *TransportError.
func Get[T any](ctx context.Context, c *Client, rawURL string, cfg RequestConfig) (*Response[T], error) {
	target, err := ResolveURL(rawURL, cfg)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(cfg.Headers).
		Get(target)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	log.Debugf("GET %s -> %d", target, resp.StatusCode())

	if !isSuccess(resp.StatusCode()) {
		return nil, &RequestError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			URL:        target,
		}
	}

	var data T
	if err := json.Unmarshal([]byte(resp.String()), &data); err != nil {
		return nil, &DecodeError{URL: target, Err: err}
	}

	return &Response[T]{
		Data:       data,
		Status:     resp.StatusCode(),
		StatusText: statusText(resp.StatusCode(), resp.Status()),
		Headers:    normalizeHeaders(resp.Header()),
		Config: ResolvedConfig{
			RequestConfig: cfg,
			URL:           target,
		},
	}, nil
}

func isSuccess(code int) bool {
	return code >= 200 && code <= 299
}

// statusText strips the numeric code from a status line such as "200 OK".
func statusText(code int, status string) string {
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		return http.StatusText(code)
	}
	return text
}

// normalizeHeaders lower-cases header names and joins repeated values.
func normalizeHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for name, values := range h {
		key := strings.ToLower(name)
		if existing, ok := out[key]; ok {
			values = append([]string{existing}, values...)
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}
