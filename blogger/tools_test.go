package blogger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudsuite/agent-apps/core"
)

func TestSaveBlogPost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")

	result, err := SaveBlogPost(context.Background(), SavePostInput{
		BlogPost: "# Title\n\nBody.",
		Filename: path,
	})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody.", string(data))
}

func TestSaveBlogPostBadPath(t *testing.T) {
	result, err := SaveBlogPost(context.Background(), SavePostInput{
		BlogPost: "text",
		Filename: filepath.Join(t.TempDir(), "missing", "post.md"),
	})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
}

func TestAnalyzeCodebase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref: refs/heads/main"), 0o644))
	// Binary content is skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0x01}, 0o644))

	state := core.NewState()
	result, err := AnalyzeCodebase(context.Background(), state, AnalyzeCodebaseInput{Directory: dir})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])

	blob := state.GetString("codebase_context")
	assert.Contains(t, blob, "main.go")
	assert.Contains(t, blob, "package main")
	assert.NotContains(t, blob, "refs/heads/main")
	assert.NotContains(t, blob, "blob.bin")
}

func TestAnalyzeCodebaseMissingDirectory(t *testing.T) {
	state := core.NewState()
	result, err := AnalyzeCodebase(context.Background(), state, AnalyzeCodebaseInput{
		Directory: filepath.Join(t.TempDir(), "nope"),
	})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
	assert.False(t, state.Has("codebase_context"))
}
