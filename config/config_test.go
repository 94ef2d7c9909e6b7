package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT_ID", "GOOGLE_CLOUD_LOCATION",
		"GOOGLE_GENAI_USE_VERTEXAI", "GOOGLE_API_KEY",
		"ROOT_AGENT_MODEL", "WORKER_MODEL", "BQ_DATA_PROJECT_ID",
		"BQ_COMPUTE_PROJECT_ID", "AGENT_APPS_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo-project")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "demo-project", cfg.ProjectID)
	assert.Equal(t, "us-central1", cfg.Location)
	assert.Equal(t, "gemini-2.5-pro", cfg.RootAgentModel)
	assert.Equal(t, "gemini-2.5-flash", cfg.WorkerModel)
	assert.Equal(t, ":8080", cfg.ListenAddr)

	// BigQuery projects default to the main project.
	assert.Equal(t, "demo-project", cfg.BQDataProjectID)
	assert.Equal(t, "demo-project", cfg.BQComputeProjectID)
}

func TestLoadRequiresProject(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo-project")
	t.Setenv("GOOGLE_CLOUD_LOCATION", "EU")
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "1")
	t.Setenv("WORKER_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("BQ_DATA_PROJECT_ID", "warehouse-project")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "eu", cfg.Location)
	assert.True(t, cfg.UseVertexAI)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.WorkerModel)
	assert.Equal(t, "warehouse-project", cfg.BQDataProjectID)
	assert.Equal(t, "demo-project", cfg.BQComputeProjectID)
}

func TestLoadYAMLOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "demo-project")

	path := filepath.Join(t.TempDir(), "agent-apps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root_agent_model: gemini-3.0-pro\nlisten_addr: ':9090'\n"), 0o644))
	t.Setenv("AGENT_APPS_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-3.0-pro", cfg.RootAgentModel)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	// Env-derived fields not named in the overlay are untouched.
	assert.Equal(t, "demo-project", cfg.ProjectID)
}

func TestProjectLocation(t *testing.T) {
	cfg := &Config{ProjectID: "p", Location: "us-central1"}
	assert.Equal(t, "p.us-central1", cfg.ProjectLocation())
}
