package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meysam81/oneoffctl/internal/config"
	"github.com/meysam81/oneoffctl/internal/logger"
	"github.com/meysam81/oneoffctl/internal/models"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Default().API
	cfg.BaseURL = srv.URL + "/api"
	return New(cfg, srv.Client(), WithInitialBackoff(time.Millisecond))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	var ids []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get(HeaderRequestID))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []string{"http", "shell"}})
	})

	types, err := c.System().JobTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"http", "shell"}, types)
	assert.EqualValues(t, 3, calls.Load())

	require.Len(t, ids, 3)
	_, err = uuid.Parse(ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids[0], ids[2], "retries keep the request id")
}

func TestClient_RetryLimit(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.System().Status(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load(), "one attempt plus two retries")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Request failed with status code 502 Bad Gateway", apiErr.Message)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "system/status", apiErr.Path)
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusNotFound, map[string]string{"error": "Job not found"})
	})

	_, err := c.Jobs().Get(context.Background(), "missing")
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
	assert.EqualError(t, err, "Job not found")
	assert.True(t, IsNotFound(err))
}

func TestClient_Headers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/j%201/clone", r.URL.EscapedPath())
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, r.Header.Get("User-Agent"), "oneoffctl/")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"scheduled_at":"now"}`, string(body))

		writeJSON(t, w, http.StatusCreated, map[string]any{"data": models.Job{ID: "j2", Name: "copy"}})
	})

	job, err := c.Jobs().Clone(context.Background(), "j 1", "now")
	require.NoError(t, err)
	assert.Equal(t, "j2", job.ID)
}

func TestClient_ListJobs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs", r.URL.Path)
		assert.Equal(t, "running", r.URL.Query().Get("status"))
		assert.Equal(t, []string{"a", "b"}, r.URL.Query()["tag_id"])
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data":  []models.Job{{ID: "1"}, {ID: "2"}},
			"total": 7, "limit": 2, "offset": 0,
		})
	})

	f := models.DefaultJobFilter()
	f.Status = "running"
	f.TagIDs = []string{"a", "b"}
	list, err := c.Jobs().List(context.Background(), f)
	require.NoError(t, err)
	assert.Len(t, list.Data, 2)
	assert.EqualValues(t, 7, list.Total)
}

func TestClient_DeleteNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	require.NoError(t, c.Jobs().Delete(context.Background(), "1"))
}

func TestClient_UpdateConfig(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/system/config", r.URL.Path)
		var got models.ConfigUpdate
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, models.ConfigUpdate{Key: "workers", Value: "4"}, got)
		writeJSON(t, w, http.StatusOK, map[string]any{"data": map[string]string{"message": "Config updated"}})
	})

	msg, err := c.System().UpdateConfig(context.Background(), "workers", "4")
	require.NoError(t, err)
	assert.Equal(t, "Config updated", msg.Message)
}

func TestClient_ProjectsIncludeArchived(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("include_archived"))
		writeJSON(t, w, http.StatusOK, map[string]any{"data": []models.Project{{ID: "p1"}}})
	})

	ps, err := c.Projects().List(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "p1", ps[0].ID)
}

func TestClient_ContextCancelStopsRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.initialBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Tags().List(ctx)
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestNewError_Fallback(t *testing.T) {
	e := newError(http.StatusTeapot, []byte("not json"))
	assert.Equal(t, "Request failed with status code 418 I'm a teapot", e.Message)
	assert.Zero(t, StatusOf(errors.New("plain")))
}
