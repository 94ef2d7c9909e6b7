// Package trends implements a two-step pipeline over the public Google
// Trends dataset: generate a BigQuery SQL query from the user's question,
// then execute it and interpret the results.
package trends

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// maxTrendRows caps the rows returned from a trends query.
const maxTrendRows = 100

type Executor struct {
	client *bigquery.Client
}

func NewExecutor(ctx context.Context, cfg *config.Config) (*Executor, error) {
	client, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &Executor{client: client}, nil
}

type ExecuteSQLInput struct {
	Query string `json:"query" jsonschema_description:"The GoogleSQL query to run against the Google Trends public dataset" jsonschema:"required"`
}

// ExecuteSQL runs the generated query against the public dataset and
// returns capped rows as a status dictionary.
func (e *Executor) ExecuteSQL(ctx context.Context, in ExecuteSQLInput) (map[string]any, error) {
	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(in.Query)), "SELECT") {
		return map[string]any{"status": "error", "error": "only SELECT statements are allowed"}, nil
	}
	it, err := e.client.Query(in.Query).Read(ctx)
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	var rows []map[string]any
	for len(rows) < maxTrendRows {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return map[string]any{"status": "error", "error": err.Error()}, nil
		}
		converted := make(map[string]any, len(row))
		for k, v := range row {
			converted[k] = fmt.Sprintf("%v", v)
		}
		rows = append(rows, converted)
	}
	return map[string]any{"status": "success", "rows": rows, "row_count": len(rows)}, nil
}

// New builds the Google Trends pipeline.
func New(ctx context.Context, cfg *config.Config, llm core.LLM) (*core.SequentialAgent, error) {
	executor, err := NewExecutor(ctx, cfg)
	if err != nil {
		return nil, err
	}

	generator := &core.LLMAgent{
		AgentName:   "TrendsQueryGeneratorAgent",
		Desc:        "Generates a BigQuery SQL query based on the user's question about Google Trends.",
		Model:       cfg.RootAgentModel,
		Instruction: generatorInstruction,
		OutputKey:   "generated_sql",
		LLM:         llm,
	}

	runner := &core.LLMAgent{
		AgentName:   "TrendsQueryExecutorAgent",
		Desc:        "Executes the generated SQL query using the execute_bigquery_sql tool.",
		Model:       cfg.WorkerModel,
		Instruction: executorInstruction,
		Tools: []*core.Tool{
			core.MustTool("execute_bigquery_sql",
				"Executes a GoogleSQL query against the Google Trends public dataset.",
				executor.ExecuteSQL),
		},
		LLM: llm,
	}

	return &core.SequentialAgent{
		AgentName: "GoogleTrendsAgent",
		Desc:      "A two-step pipeline that first generates a SQL query for Google Trends and then executes it.",
		SubAgents: []core.Agent{generator, runner},
	}, nil
}
