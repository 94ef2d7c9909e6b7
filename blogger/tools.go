package blogger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cloudsuite/agent-apps/core"
)

type SavePostInput struct {
	BlogPost string `json:"blog_post" jsonschema_description:"The blog post content to save" jsonschema:"required"`
	Filename string `json:"filename" jsonschema_description:"The markdown filename to save to" jsonschema:"required"`
}

// SaveBlogPost writes the final post to a markdown file.
func SaveBlogPost(ctx context.Context, in SavePostInput) (map[string]any, error) {
	if err := os.WriteFile(in.Filename, []byte(in.BlogPost), 0o644); err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	return map[string]any{"status": "success"}, nil
}

type AnalyzeCodebaseInput struct {
	Directory string `json:"directory" jsonschema_description:"The directory containing the codebase to analyze" jsonschema:"required"`
}

// maxCodebaseBytes bounds how much source text gets stuffed into the
// model's context.
const maxCodebaseBytes = 512 * 1024

// AnalyzeCodebase walks a directory and concatenates its readable text
// files into a single context blob, stored under the codebase_context state
// key for the planner and writer.
func AnalyzeCodebase(ctx context.Context, s core.State, in AnalyzeCodebaseInput) (map[string]any, error) {
	var sb strings.Builder
	err := filepath.WalkDir(in.Directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); name == ".git" || name == "node_modules" || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		if sb.Len() > maxCodebaseBytes {
			return filepath.SkipAll
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !utf8.Valid(data) {
			return nil
		}
		fmt.Fprintf(&sb, "- **%s**:\n%s\n", path, data)
		return nil
	})
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	s.Set("codebase_context", sb.String())
	return map[string]any{"status": "success", "codebase_context": sb.String()}, nil
}
