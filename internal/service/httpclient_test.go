package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "application/octet-stream", r.Header.Get("Accept"))
			_, _ = w.Write([]byte("payload"))
		case "/redirect":
			http.Redirect(w, r, "/ok", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := &DefaultHTTPClient{Client: srv.Client()}
	hdr := http.Header{"Accept": []string{"application/octet-stream"}}
	ctx := context.Background()

	body, err := DownloadBytes(ctx, c, srv.URL+"/ok", hdr, 0)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	body, err = DownloadBytes(ctx, c, srv.URL+"/redirect", hdr, 0)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	_, err = DownloadBytes(ctx, c, srv.URL+"/ok", hdr, 3)
	assert.ErrorIs(t, err, ErrTooLarge)

	body, err = DownloadBytes(ctx, c, srv.URL+"/ok", hdr, 7)
	require.NoError(t, err)
	assert.Len(t, body, 7)

	_, err = DownloadBytes(ctx, c, srv.URL+"/missing", hdr, 0)
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestNewHTTPClient(t *testing.T) {
	c := NewHTTPClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout)
}
