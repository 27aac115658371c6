package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacedHTTPClient(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newPacedHTTPClient(20, 1, &http.Client{Timeout: time.Second})
	assert.Equal(t, time.Second, client.Timeout)

	start := time.Now()
	for range 3 {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	// burst of one at 20/s: the 2nd and 3rd requests wait ~50ms each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	assert.EqualValues(t, 3, hits.Load())
}

func TestPacedHTTPClientCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	client := newPacedHTTPClient(0.001, 1, &http.Client{})

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.Error(t, err)
}
