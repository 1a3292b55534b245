package http_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpadapter "github.com/couchcryptid/incident-viz/internal/adapter/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	artifacts := []string{"Days.png", "Type.png", "file_sf.geojson"}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, dir, artifacts, logger), dir
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/healthz").Code)
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusOK, get(srv, "/readyz").Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, errors.New("no successful run yet"))
	assert.Equal(t, http.StatusServiceUnavailable, get(srv, "/readyz").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestArtifactsServesGeneratedFile(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	body := `{"type":"FeatureCollection","features":[]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file_sf.geojson"), []byte(body), 0o600))

	rec := get(srv, "/artifacts/file_sf.geojson")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.String())
}

func TestArtifactsMissingFile(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	assert.Equal(t, http.StatusNotFound, get(srv, "/artifacts/Days.png").Code)
}

func TestArtifactsNoDirectoryListing(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Type.png"), []byte("png"), 0o600))

	assert.Equal(t, http.StatusNotFound, get(srv, "/artifacts/").Code)
}

func TestArtifactsOnlyServesNamedArtifacts(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample_sfpd_incident_all.csv"), []byte("IncidntNum,Category\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("KAFKA_PASSWORD=secret"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "Days.png"), []byte("png"), 0o600))

	for _, path := range []string{
		"/artifacts/sample_sfpd_incident_all.csv",
		"/artifacts/.env",
		"/artifacts/nested/Days.png",
		"/artifacts/../go.mod",
	} {
		t.Run(path, func(t *testing.T) {
			rec := get(srv, path)
			assert.NotEqual(t, http.StatusOK, rec.Code)
			assert.NotContains(t, rec.Body.String(), "secret")
			assert.NotContains(t, rec.Body.String(), "IncidntNum")
		})
	}
	assert.Equal(t, http.StatusNotFound, get(srv, "/artifacts/.env").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/artifacts/sample_sfpd_incident_all.csv").Code)
}

func TestArtifactsRejectsPost(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/artifacts/Days.png", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
