package dataengineering

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	dataform "cloud.google.com/go/dataform/apiv1beta1"
	"cloud.google.com/go/dataform/apiv1beta1/dataformpb"
	"google.golang.org/api/iterator"

	"cloudsuite/agent-apps/config"
)

// DataformTools wraps the Dataform workspace and workflow RPCs: file
// management, pipeline compilation and workflow invocation.
type DataformTools struct {
	client *dataform.Client
	cfg    *config.Config
}

func NewDataformTools(ctx context.Context, cfg *config.Config) (*DataformTools, error) {
	client, err := dataform.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create dataform client: %w", err)
	}
	return &DataformTools{client: client, cfg: cfg}, nil
}

func (t *DataformTools) repositoryPath() string {
	return fmt.Sprintf("projects/%s/locations/%s/repositories/%s",
		t.cfg.ProjectID, t.cfg.Location, t.cfg.DataformRepository)
}

func (t *DataformTools) workspacePath() string {
	return fmt.Sprintf("%s/workspaces/%s", t.repositoryPath(), t.cfg.DataformWorkspace)
}

type WriteDataformFileInput struct {
	FilePath    string `json:"file_path" jsonschema_description:"The fully qualified path of the file to upload" jsonschema:"required"`
	FileContent string `json:"file_content" jsonschema_description:"The content of the file to upload" jsonschema:"required"`
}

// WriteFile uploads a file into the Dataform workspace.
func (t *DataformTools) WriteFile(ctx context.Context, in WriteDataformFileInput) (map[string]any, error) {
	slog.Info("uploading dataform file", "path", in.FilePath)
	_, err := t.client.WriteFile(ctx, &dataformpb.WriteFileRequest{
		Workspace: t.workspacePath(),
		Path:      in.FilePath,
		Contents:  []byte(in.FileContent),
	})
	if err != nil {
		return errResult(fmt.Sprintf("error uploading file %q: %v", in.FilePath, err)), nil
	}
	return map[string]any{"status": "success", "message": "File uploaded: " + in.FilePath}, nil
}

type DataformFileInput struct {
	FilePath string `json:"file_path" jsonschema_description:"The fully qualified path of the file" jsonschema:"required"`
}

// ReadFile reads a file from the Dataform workspace.
func (t *DataformTools) ReadFile(ctx context.Context, in DataformFileInput) (map[string]any, error) {
	resp, err := t.client.ReadFile(ctx, &dataformpb.ReadFileRequest{
		Workspace: t.workspacePath(),
		Path:      in.FilePath,
	})
	if err != nil {
		return errResult(fmt.Sprintf("error reading file %q: %v", in.FilePath, err)), nil
	}
	return map[string]any{"status": "success", "content": string(resp.GetFileContents())}, nil
}

// DeleteFile removes a file from the Dataform workspace.
func (t *DataformTools) DeleteFile(ctx context.Context, in DataformFileInput) (map[string]any, error) {
	_, err := t.client.RemoveFile(ctx, &dataformpb.RemoveFileRequest{
		Workspace: t.workspacePath(),
		Path:      in.FilePath,
	})
	if err != nil {
		return errResult(fmt.Sprintf("error deleting file %q: %v", in.FilePath, err)), nil
	}
	return map[string]any{"status": "success", "message": "File deleted: " + in.FilePath}, nil
}

type SearchFilesInput struct {
	Pattern string `json:"pattern,omitempty" jsonschema_description:"Optional substring to filter file paths"`
}

// SearchFiles lists workspace files, optionally filtered by substring.
func (t *DataformTools) SearchFiles(ctx context.Context, in SearchFilesInput) (map[string]any, error) {
	it := t.client.SearchFiles(ctx, &dataformpb.SearchFilesRequest{
		Workspace: t.workspacePath(),
	})
	var files []string
	for {
		result, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errResult(fmt.Sprintf("error searching files: %v", err)), nil
		}
		file := result.GetFile()
		if file == nil {
			continue
		}
		if in.Pattern == "" || containsPattern(file.GetPath(), in.Pattern) {
			files = append(files, file.GetPath())
		}
	}
	return map[string]any{"status": "success", "files": files}, nil
}

type CompileInput struct {
	CompileOnly bool `json:"compile_only,omitempty" jsonschema_description:"If true, only compile without executing the workflow"`
}

// Compile compiles the pipeline and, unless compile_only is set, starts a
// workflow invocation for the compilation result. The returned pipeline DAG
// is the list of compiled actions.
func (t *DataformTools) Compile(ctx context.Context, in CompileInput) (map[string]any, error) {
	slog.Info("compiling dataform pipeline", "workspace", t.cfg.DataformWorkspace)
	result, err := t.client.CreateCompilationResult(ctx, &dataformpb.CreateCompilationResultRequest{
		Parent: t.repositoryPath(),
		CompilationResult: &dataformpb.CompilationResult{
			Source: &dataformpb.CompilationResult_Workspace{Workspace: t.workspacePath()},
		},
	})
	if err != nil {
		return errResult(fmt.Sprintf("error in dataform operation: %v", err)), nil
	}
	if errs := result.GetCompilationErrors(); len(errs) > 0 {
		messages := make([]map[string]any, 0, len(errs))
		for _, e := range errs {
			messages = append(messages, map[string]any{
				"path":    e.GetPath(),
				"message": e.GetMessage(),
			})
		}
		return map[string]any{"status": "error", "compilation_errors": messages}, nil
	}

	dag, err := t.compiledActions(ctx, result.GetName())
	if err != nil {
		return errResult(err.Error()), nil
	}
	if in.CompileOnly {
		return map[string]any{
			"status":       "success",
			"message":      "Compilation successful (compile-only mode)",
			"pipeline_dag": dag,
		}, nil
	}

	invocation, err := t.client.CreateWorkflowInvocation(ctx, &dataformpb.CreateWorkflowInvocationRequest{
		Parent: t.repositoryPath(),
		WorkflowInvocation: &dataformpb.WorkflowInvocation{
			CompilationSource: &dataformpb.WorkflowInvocation_CompilationResult{
				CompilationResult: result.GetName(),
			},
		},
	})
	if err != nil {
		return errResult(fmt.Sprintf("error in dataform operation: %v", err)), nil
	}
	return map[string]any{
		"status":                 "success",
		"message":                "Compilation and execution successful",
		"pipeline_dag":           dag,
		"workflow_invocation_id": invocation.GetName(),
	}, nil
}

func (t *DataformTools) compiledActions(ctx context.Context, compilationResult string) ([]map[string]any, error) {
	it := t.client.QueryCompilationResultActions(ctx, &dataformpb.QueryCompilationResultActionsRequest{
		Name: compilationResult,
	})
	var actions []map[string]any
	for {
		action, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading compiled actions: %w", err)
		}
		actions = append(actions, map[string]any{
			"target": targetName(action.GetTarget()),
		})
	}
	return actions, nil
}

type ExecutionLogsInput struct {
	WorkflowInvocationID string `json:"workflow_invocation_id" jsonschema_description:"The full resource name of the workflow invocation" jsonschema:"required"`
}

// ExecutionLogs returns per-action status for a workflow invocation. Any
// failed action marks the overall result as error.
func (t *DataformTools) ExecutionLogs(ctx context.Context, in ExecutionLogsInput) (map[string]any, error) {
	it := t.client.QueryWorkflowInvocationActions(ctx, &dataformpb.QueryWorkflowInvocationActionsRequest{
		Name: in.WorkflowInvocationID,
	})
	var actions []map[string]any
	failed := false
	for {
		action, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errResult(fmt.Sprintf("error getting execution logs for %q: %v", in.WorkflowInvocationID, err)), nil
		}
		detail := map[string]any{
			"name":   targetName(action.GetTarget()),
			"status": action.GetState().String(),
		}
		if action.GetState() == dataformpb.WorkflowInvocationAction_FAILED {
			failed = true
			detail["error_message"] = action.GetFailureReason()
		}
		if canonical := targetName(action.GetCanonicalTarget()); canonical != "" {
			detail["canonical_target_name"] = canonical
		}
		if bq := action.GetBigqueryAction(); bq != nil {
			detail["job_id"] = bq.GetJobId()
		}
		actions = append(actions, detail)
	}
	if failed {
		return map[string]any{
			"status": "error",
			"error_message": fmt.Sprintf(
				"One or more actions failed in workflow invocation %s. See actions for details.",
				in.WorkflowInvocationID),
			"actions": actions,
		}, nil
	}
	return map[string]any{"status": "success", "actions": actions}, nil
}

type ExecuteWorkflowInput struct {
	WorkflowName string `json:"workflow_name" jsonschema_description:"The workflow config to execute" jsonschema:"required"`
}

// ExecuteWorkflow starts an invocation of a named workflow config.
func (t *DataformTools) ExecuteWorkflow(ctx context.Context, in ExecuteWorkflowInput) (map[string]any, error) {
	invocation, err := t.client.CreateWorkflowInvocation(ctx, &dataformpb.CreateWorkflowInvocationRequest{
		Parent: t.repositoryPath(),
		WorkflowInvocation: &dataformpb.WorkflowInvocation{
			CompilationSource: &dataformpb.WorkflowInvocation_WorkflowConfig{
				WorkflowConfig: in.WorkflowName,
			},
		},
	})
	if err != nil {
		return errResult(fmt.Sprintf("error executing workflow %q: %v", in.WorkflowName, err)), nil
	}
	return map[string]any{
		"status":                 "success",
		"message":                "Workflow execution started",
		"workflow_invocation_id": invocation.GetName(),
		"workflow_name":          in.WorkflowName,
	}, nil
}

type RepoLinkInput struct{}

// RepoLink builds the Cloud console link for the configured repository.
func (t *DataformTools) RepoLink(ctx context.Context, in RepoLinkInput) (map[string]any, error) {
	url := fmt.Sprintf(
		"https://console.cloud.google.com/bigquery/dataform/locations/%s/repositories/%s/workspaces/%s",
		t.cfg.Location, t.cfg.DataformRepository, t.cfg.DataformWorkspace)
	return map[string]any{
		"status":          "success",
		"repository_url":  url,
		"repository_name": t.cfg.DataformRepository,
		"project_id":      t.cfg.ProjectID,
		"location":        t.cfg.Location,
		"workspace_name":  t.cfg.DataformWorkspace,
	}, nil
}

func targetName(target *dataformpb.Target) string {
	if target == nil {
		return ""
	}
	return target.GetName()
}

func containsPattern(path, pattern string) bool {
	return pattern == "" || strings.Contains(path, pattern)
}
