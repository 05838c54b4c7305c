package http

import (
	"io"
	"net/http"
	"time"
)

var client *http.Client

// GetClient returns the shared HTTP client used for outbound calls
func GetClient() *http.Client {
	if client == nil {
		transport := &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			DisableCompression:  false,
			DisableKeepAlives:   false,
		}

		client = &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		}
	}
	return client
}

// NewClient returns a dedicated HTTP client with the given timeout
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
		Timeout: timeout,
	}
}

// CloseResponse drains and closes an HTTP response body
func CloseResponse(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
