package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient creates an HTTP client tuned for external API calls.
//
// http.DefaultClient has no timeout, so a custom client is always used.
// The transport is configured explicitly for connection stability and
// resource management:
//   - Proxy: honors HTTP_PROXY and friends from the environment
//   - Dialer.Timeout: TCP connect timeout, shorter than the default
//   - MaxIdleConns: caps idle connections under load
//   - Client.Timeout: whole-request timeout, passed in by the caller
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
