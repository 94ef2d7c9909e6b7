package dataengineering

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSTools wraps Cloud Storage reads the agent uses to inspect source
// files. All methods report missing buckets and files as data rather than
// failing the call.
type GCSTools struct {
	client *storage.Client
}

func NewGCSTools(ctx context.Context) (*GCSTools, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSTools{client: client}, nil
}

type BucketInput struct {
	BucketName string `json:"bucket_name" jsonschema_description:"The name of the bucket" jsonschema:"required"`
}

// ValidateBucketExists checks bucket existence and returns its metadata.
func (t *GCSTools) ValidateBucketExists(ctx context.Context, in BucketInput) (map[string]any, error) {
	attrs, err := t.client.Bucket(in.BucketName).Attrs(ctx)
	if errors.Is(err, storage.ErrBucketNotExist) {
		return map[string]any{"status": "success", "exists": false, "bucket_name": in.BucketName}, nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}
	return map[string]any{
		"status":      "success",
		"exists":      true,
		"bucket_name": in.BucketName,
		"metadata": map[string]any{
			"created":       attrs.Created.Format(time.RFC3339),
			"location":      attrs.Location,
			"storage_class": attrs.StorageClass,
			"labels":        attrs.Labels,
		},
	}, nil
}

type FileInput struct {
	BucketName string `json:"bucket_name" jsonschema_description:"The name of the bucket" jsonschema:"required"`
	FilePath   string `json:"file_path" jsonschema_description:"The path of the file within the bucket" jsonschema:"required"`
}

// ValidateFileExists checks object existence and returns its metadata.
func (t *GCSTools) ValidateFileExists(ctx context.Context, in FileInput) (map[string]any, error) {
	attrs, err := t.client.Bucket(in.BucketName).Object(in.FilePath).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return map[string]any{
			"status": "success", "exists": false,
			"bucket_name": in.BucketName, "file_path": in.FilePath,
		}, nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}
	return map[string]any{
		"status":      "success",
		"exists":      true,
		"bucket_name": in.BucketName,
		"file_path":   in.FilePath,
		"metadata": map[string]any{
			"size":         attrs.Size,
			"content_type": attrs.ContentType,
			"created":      attrs.Created.Format(time.RFC3339),
			"updated":      attrs.Updated.Format(time.RFC3339),
			"md5_hash":     fmt.Sprintf("%x", attrs.MD5),
			"generation":   attrs.Generation,
		},
	}, nil
}

type ListFilesInput struct {
	BucketName string `json:"bucket_name" jsonschema_description:"The name of the bucket" jsonschema:"required"`
	Prefix     string `json:"prefix,omitempty" jsonschema_description:"Only objects whose names begin with this prefix"`
	Delimiter  string `json:"delimiter,omitempty" jsonschema_description:"Directory-style delimiter, usually /"`
	MaxResults int    `json:"max_results,omitempty" jsonschema_description:"Maximum number of results to return"`
}

// ListBucketFiles lists files in a bucket with optional prefix and
// delimiter filtering.
func (t *GCSTools) ListBucketFiles(ctx context.Context, in ListFilesInput) (map[string]any, error) {
	it := t.client.Bucket(in.BucketName).Objects(ctx, &storage.Query{
		Prefix:    in.Prefix,
		Delimiter: in.Delimiter,
	})
	max := in.MaxResults
	if max <= 0 {
		max = 1000
	}
	var files []map[string]any
	var prefixes []string
	for len(files)+len(prefixes) < max {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errResult(err.Error()), nil
		}
		if attrs.Prefix != "" {
			prefixes = append(prefixes, attrs.Prefix)
			continue
		}
		files = append(files, map[string]any{
			"name":         attrs.Name,
			"size":         attrs.Size,
			"content_type": attrs.ContentType,
			"created":      attrs.Created.Format(time.RFC3339),
			"updated":      attrs.Updated.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"status":         "success",
		"bucket_name":    in.BucketName,
		"prefix":         in.Prefix,
		"files":          files,
		"prefixes":       prefixes,
		"total_files":    len(files),
		"total_prefixes": len(prefixes),
	}, nil
}

type ReadFileInput struct {
	BucketName string `json:"bucket_name" jsonschema_description:"The name of the bucket" jsonschema:"required"`
	FilePath   string `json:"file_path" jsonschema_description:"The path of the file within the bucket" jsonschema:"required"`
	Mode       string `json:"mode,omitempty" jsonschema_description:"Reading mode: head, tail or full (default full)"`
	NumLines   int    `json:"num_lines,omitempty" jsonschema_description:"Number of lines for head/tail modes, default 10"`
}

// ReadFile reads a text object with head/tail/full slicing.
func (t *GCSTools) ReadFile(ctx context.Context, in ReadFileInput) (map[string]any, error) {
	obj := t.client.Bucket(in.BucketName).Object(in.FilePath)
	reader, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return errResult(fmt.Sprintf("file %s does not exist in bucket %s", in.FilePath, in.BucketName)), nil
	}
	if err != nil {
		return errResult(err.Error()), nil
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return errResult(err.Error()), nil
	}

	lines, position := sliceLines(strings.Split(string(data), "\n"), in.Mode, in.NumLines)
	return map[string]any{
		"status":      "success",
		"bucket_name": in.BucketName,
		"file_path":   in.FilePath,
		"mode":        position,
		"num_lines":   len(lines),
		"content":     strings.Join(lines, "\n"),
	}, nil
}

// sliceLines applies head/tail/full slicing; unknown modes fall back to
// full, matching the lenient argument handling the model expects.
func sliceLines(lines []string, mode string, numLines int) ([]string, string) {
	if numLines <= 0 {
		numLines = 10
	}
	switch mode {
	case "head":
		if len(lines) > numLines {
			lines = lines[:numLines]
		}
		return lines, "head"
	case "tail":
		if len(lines) > numLines {
			lines = lines[len(lines)-numLines:]
		}
		return lines, "tail"
	default:
		return lines, "full"
	}
}
