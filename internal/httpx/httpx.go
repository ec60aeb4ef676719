// Package httpx holds the HTTP plumbing shared by the metadata providers: client construction (optionally through
// an HTTP proxy) and a strict JSON GET helper.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const userAgent = "video-filer/1.0 (+https://github.com/alanbriolat/video-filer)"

// StatusError means the server answered with something other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Transport sets a default User-Agent on every request before handing it to Base.
type Transport struct {
	Base http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", userAgent)
	}
	return base.RoundTrip(req)
}

// NewClient returns a client that connects directly. No timeout is set; bound requests with the context.
func NewClient() *http.Client {
	return &http.Client{Transport: &Transport{Base: &http.Transport{Proxy: nil}}}
}

// ProxyURL builds the URL of a plain HTTP proxy listening on host:port.
func ProxyURL(host string, port int) (*url.URL, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("empty proxy host")
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid proxy port %d", port)
	}
	return &url.URL{Scheme: "http", Host: net.JoinHostPort(host, strconv.Itoa(port))}, nil
}

// NewProxyClient returns a client that sends every request through the given HTTP proxy.
func NewProxyClient(proxy *url.URL) (*http.Client, error) {
	if proxy == nil {
		return nil, errors.New("nil proxy URL")
	}
	base := &http.Transport{Proxy: http.ProxyURL(proxy)}
	return &http.Client{Transport: &Transport{Base: base}}, nil
}

// GetJSON issues a GET to rawURL with the given query, requires a 200 response and decodes the body into v.
func GetJSON(ctx context.Context, client *http.Client, rawURL string, query url.Values, v any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	// Errors report the endpoint without its query, which may carry an API key.
	endpoint := *u
	endpoint.RawQuery = ""
	resp, err := client.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = endpoint.String()
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: endpoint.String(), StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
