//go:build e2e

package e2e_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismcrm/prism-backend/internal/service/coach"
)

func TestCoachChat_OfflineFallback(t *testing.T) {
	ts := setupTestServer(t)

	var resp struct {
		Reply struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"reply"`
		Degraded bool `json:"degraded"`
	}

	status := ts.doJSON(t, http.MethodPost, "/api/coach/chat", map[string]any{
		"message": "Which deal should I focus on?",
		"history": []map[string]string{
			{"role": "assistant", "text": coach.Greeting},
			{"role": "user", "text": "hi"},
		},
	}, &resp)
	require.Equal(t, http.StatusOK, status)

	// No generator configured: chat still answers, flagged as degraded.
	assert.Equal(t, "assistant", resp.Reply.Role)
	assert.Equal(t, coach.FallbackReply, resp.Reply.Text)
	assert.True(t, resp.Degraded)
}

func TestCoachChat_RejectsEmptyMessage(t *testing.T) {
	ts := setupTestServer(t)

	var errResp map[string]string
	status := ts.doJSON(t, http.MethodPost, "/api/coach/chat", map[string]any{
		"message": "",
	}, &errResp)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp["error"], "message")
}

func TestCoachChat_RejectsUnknownRole(t *testing.T) {
	ts := setupTestServer(t)

	status := ts.doJSON(t, http.MethodPost, "/api/coach/chat", map[string]any{
		"message": "hi",
		"history": []map[string]string{{"role": "wizard", "text": "zap"}},
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)
}
