//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismcrm/prism-backend/internal/adapter/localstore"
	"github.com/prismcrm/prism-backend/internal/config"
	"github.com/prismcrm/prism-backend/internal/service/coach"
	"github.com/prismcrm/prism-backend/internal/service/deal"
	"github.com/prismcrm/prism-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a
// file store in a temp directory. The store starts with the sample pipeline.
// The coach runs without a generator, so chat replies are the offline
// fallback — deterministic and network-free.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	store, err := localstore.New(filepath.Join(t.TempDir(), "deals.json"))
	require.NoError(t, err)

	dealService := deal.NewService(logger, store)
	coachService := coach.NewService(logger, store, nil, 40)

	router := rest.NewRouter(
		logger,
		rest.NewDealHandler(dealService, logger),
		rest.NewCoachHandler(coachService, logger),
		rest.NewHealthHandler(store, "test-version"),
		config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type",
			MaxAge:         86400,
		},
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client()}
}

// doJSON sends a request with an optional JSON body and decodes the JSON
// response into out (skipped when out is nil or the body is empty).
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}
	return resp.StatusCode
}
