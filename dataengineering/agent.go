// Package dataengineering implements the BigQuery + Dataform ELT agent: a
// single root agent whose tools manage Dataform workspace files, compile
// the pipeline, and inspect BigQuery datasets and GCS source files.
package dataengineering

import (
	"context"
	"fmt"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// New builds the data engineering root agent with its full toolset.
func New(ctx context.Context, cfg *config.Config, llm core.LLM) (*core.LLMAgent, error) {
	bq, err := NewBigQueryTools(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gcs, err := NewGCSTools(ctx)
	if err != nil {
		return nil, err
	}
	df, err := NewDataformTools(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &core.LLMAgent{
		AgentName:   "data_engineering_agent",
		Desc:        "A BigQuery and Dataform ELT expert that generates and manages Dataform pipeline SQLX code.",
		Model:       cfg.RootAgentModel,
		Instruction: fmt.Sprintf(rootInstruction, cfg.ProjectID),
		Tools: []*core.Tool{
			core.MustTool("write_file_to_dataform", "Upload a file to the Dataform workspace.", df.WriteFile),
			core.MustTool("compile_dataform", "Compile the Dataform pipeline and get an overview of the pipeline DAG.", df.Compile),
			core.MustTool("get_dataform_execution_logs", "Get execution logs for a Dataform workflow invocation.", df.ExecutionLogs),
			core.MustTool("search_files_in_dataform", "Search for files in the Dataform workspace.", df.SearchFiles),
			core.MustTool("read_file_from_dataform", "Read a file from the Dataform workspace.", df.ReadFile),
			core.MustTool("delete_file_from_dataform", "Delete a file from the Dataform workspace.", df.DeleteFile),
			core.MustTool("get_dataform_repo_link", "Generate the Cloud console link for the Dataform repository.", df.RepoLink),
			core.MustTool("execute_dataform_workflow", "Execute a named Dataform workflow config.", df.ExecuteWorkflow),
			core.MustTool("get_udf_sp", "Retrieve UDFs and stored procedures from a BigQuery dataset.", bq.ListRoutines),
			core.MustTool("execute_sql", "Execute a read-only GoogleSQL query.", bq.ExecuteSQL),
			core.MustTool("get_bigquery_job_details", "Retrieve details of a BigQuery job.", bq.JobDetails),
			core.MustTool("sample_table_data", "Sample data from a BigQuery table using RAND().", bq.SampleTableData),
			core.MustTool("validate_table_data", "Validate data in a BigQuery table against rules.", bq.ValidateTableData),
			core.MustTool("validate_bucket_exists", "Validate that a GCS bucket exists.", gcs.ValidateBucketExists),
			core.MustTool("validate_file_exists", "Validate that a file exists in a GCS bucket.", gcs.ValidateFileExists),
			core.MustTool("list_bucket_files", "List files in a GCS bucket with optional filtering.", gcs.ListBucketFiles),
			core.MustTool("read_gcs_file", "Read content from a GCS file with head/tail/full options.", gcs.ReadFile),
		},
		LLM: llm,
	}, nil
}
