package services_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/services"
)

func TestJobClient_DownloadArtifact(t *testing.T) {
	payload := []byte("PK\x03\x04 fake zip content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/jobs/job-9/download", r.URL.Path)
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="job-9_desulf.zip"`)
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := services.NewJobClient(testHTTPClient(server.URL), testPolling(), lib.NewNopLogger())
	dir := filepath.Join(t.TempDir(), "nested", "out")

	res, err := client.DownloadArtifact(context.Background(), "job-9", dir, false)
	require.NoError(t, err)
	assert.Equal(t, "job-9", res.JobID)
	assert.Equal(t, filepath.Join(dir, "job-9_desulf.zip"), res.Path)
	assert.Equal(t, int64(len(payload)), res.Bytes)

	got, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestJobClient_DownloadArtifact_FallbackName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("zip"))
	}))
	defer server.Close()

	client := services.NewJobClient(testHTTPClient(server.URL), testPolling(), lib.NewNopLogger())
	res, err := client.DownloadArtifact(context.Background(), "job-1", t.TempDir(), false)
	require.NoError(t, err)
	assert.Equal(t, "job-1_result.zip", filepath.Base(res.Path))
}

func TestJobClient_DownloadArtifact_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Job not completed"})
	}))
	defer server.Close()

	dir := t.TempDir()
	client := services.NewJobClient(testHTTPClient(server.URL), testPolling(), lib.NewNopLogger())
	_, err := client.DownloadArtifact(context.Background(), "job-1", dir, false)

	var reqErr *services.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsNotFound())
	assert.Equal(t, "Job not completed", reqErr.Message)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
