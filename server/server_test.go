package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// echoAgent replies with a fixed prefix plus the user message.
type echoAgent struct {
	fail bool
}

func (a *echoAgent) Name() string        { return "echo" }
func (a *echoAgent) Description() string { return "Echoes the user message." }

func (a *echoAgent) Run(ctx context.Context, inv *core.Invocation) (*genai.Content, error) {
	if a.fail {
		return nil, errors.New("model unavailable")
	}
	var text string
	if inv.UserContent != nil && len(inv.UserContent.Parts) > 0 {
		text = inv.UserContent.Parts[0].Text
	}
	return core.TextContent(genai.RoleModel, "echo: "+text), nil
}

func newTestServer(t *testing.T, agent core.Agent) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	runners := map[string]*core.Runner{
		"echo": core.NewRunner("echo", agent),
	}
	return New(&config.Config{ListenAddr: ":0"}, runners, nil)
}

func TestListAgents(t *testing.T) {
	srv := newTestServer(t, &echoAgent{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agents", nil)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"echo"}, body["agents"])
}

func TestRunAgent(t *testing.T) {
	srv := newTestServer(t, &echoAgent{})
	router := srv.Router()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agents/echo/run",
		strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "echo: hello", resp.Response)
	assert.NotEmpty(t, resp.SessionID)

	// A second call with the session header continues the same session.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/agents/echo/run",
		strings.NewReader(`{"message": "again"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "alice")
	req.Header.Set("X-Session-ID", resp.SessionID)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var second RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, resp.SessionID, second.SessionID)
}

func TestRunAgentUnknown(t *testing.T) {
	srv := newTestServer(t, &echoAgent{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agents/nope/run",
		strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRunAgentBadRequest(t *testing.T) {
	srv := newTestServer(t, &echoAgent{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agents/echo/run",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAgentFailure(t *testing.T) {
	srv := newTestServer(t, &echoAgent{fail: true})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/agents/echo/run",
		strings.NewReader(`{"message": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
