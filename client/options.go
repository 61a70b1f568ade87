package client

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds a single request, including reading the response.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.rc.SetTimeout(d)
		return nil
	}
}

// WithHTTPClient routes requests through hc, typically httptest's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil || hc.Transport == nil {
			return fmt.Errorf("http client with a transport is required")
		}
		c.rc = c.rc.SetTransport(hc.Transport)
		return nil
	}
}

// WithRetries retries transport failures up to n times.
func WithRetries(n int, wait time.Duration) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("retry count must be >= 0")
		}
		c.rc.SetRetryCount(n).SetRetryWaitTime(wait)
		return nil
	}
}

// WithDebugLogging makes resty log each request and response.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.rc.SetDebug(enabled)
		return nil
	}
}
