package cmd

import (
	"net/http"

	"golang.org/x/time/rate"
)

// pacedTransport waits for the limiter before every request
type pacedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// newPacedHTTPClient returns an HTTP client allowing at most rps requests per
// second with the given burst
func newPacedHTTPClient(rps float64, burst int, base *http.Client) *http.Client {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout: base.Timeout,
		Transport: &pacedTransport{
			base:    transport,
			limiter: rate.NewLimiter(rate.Limit(rps), burst),
		},
	}
}
