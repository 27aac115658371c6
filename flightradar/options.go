package flightradar

import (
	"net/http"
	"time"
)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The caller keeps ownership of it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of the client's HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}
