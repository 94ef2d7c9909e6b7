// Package datascience implements an NL2SQL database agent and a BQML root
// agent over a configured BigQuery dataset.
package datascience

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// maxResultRows caps every result set returned to the model.
const maxResultRows = 80

// schemaSampleRows is how many example rows accompany each table schema.
const schemaSampleRows = 5

// Tools holds the BigQuery client and model access the data science agents
// share. Schema discovery is cached after the first call.
type Tools struct {
	client   *bigquery.Client
	llm      core.LLM
	cfg      *config.Config
	settings map[string]any
}

func NewTools(ctx context.Context, cfg *config.Config, llm core.LLM) (*Tools, error) {
	client, err := bigquery.NewClient(ctx, cfg.BQComputeProjectID)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &Tools{client: client, llm: llm, cfg: cfg}, nil
}

// DatabaseSettings returns the dataset description handed to the NL2SQL
// prompt: project, dataset and a schema-with-samples rendering of every
// table. The rendering is built once per process.
func (t *Tools) DatabaseSettings(ctx context.Context) (map[string]any, error) {
	if t.settings != nil {
		return t.settings, nil
	}
	schema, err := t.schemaAndSamples(ctx)
	if err != nil {
		return nil, err
	}
	t.settings = map[string]any{
		"bq_data_project_id":    t.cfg.BQDataProjectID,
		"bq_dataset_id":         t.cfg.BQDatasetID,
		"bq_schema_and_samples": schema,
	}
	return t.settings, nil
}

func (t *Tools) schemaAndSamples(ctx context.Context) (string, error) {
	dataset := t.client.DatasetInProject(t.cfg.BQDataProjectID, t.cfg.BQDatasetID)
	var sb strings.Builder

	it := dataset.Tables(ctx)
	for {
		table, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("list tables in %s.%s: %w", t.cfg.BQDataProjectID, t.cfg.BQDatasetID, err)
		}
		meta, err := table.Metadata(ctx)
		if err != nil {
			return "", fmt.Errorf("table metadata for %s: %w", table.TableID, err)
		}

		fullName := fmt.Sprintf("%s.%s.%s", t.cfg.BQDataProjectID, t.cfg.BQDatasetID, table.TableID)
		fmt.Fprintf(&sb, "Table: `%s`\nSchema:\n", fullName)
		for _, field := range meta.Schema {
			fmt.Fprintf(&sb, "  - %s: %s\n", field.Name, field.Type)
		}

		sample := t.client.Query(fmt.Sprintf("SELECT * FROM `%s` LIMIT %d", fullName, schemaSampleRows))
		rows, err := readRows(ctx, sample, schemaSampleRows)
		if err != nil {
			return "", fmt.Errorf("sample rows for %s: %w", fullName, err)
		}
		if len(rows) > 0 {
			sb.WriteString("Example rows:\n")
			for _, row := range rows {
				fmt.Fprintf(&sb, "  %v\n", row)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

type NL2SQLInput struct {
	Question string `json:"question" jsonschema_description:"Natural language question to translate into SQL" jsonschema:"required"`
}

// InitialNL2SQL generates a first-pass GoogleSQL query from a natural
// language question using the cached schema. The generated SQL lands in the
// sql_query state key so the validation step can pick it up.
func (t *Tools) InitialNL2SQL(ctx context.Context, s core.State, in NL2SQLInput) (map[string]any, error) {
	raw, _ := s.Get("database_settings")
	settings, ok := raw.(map[string]any)
	if !ok {
		return map[string]any{"status": "error", "error": "database_settings not present in session state"}, nil
	}
	schema, _ := settings["bq_schema_and_samples"].(string)

	prompt := fmt.Sprintf(nl2sqlPromptTemplate, maxResultRows, schema, in.Question)
	temperature := float32(0.1)
	text, err := core.GenerateText(ctx, t.llm, t.cfg.FlashModel, "", prompt, &temperature)
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	sql := stripSQLFences(text)
	s.Set("sql_query", sql)
	return map[string]any{"status": "success", "sql": sql}, nil
}

type ValidateSQLInput struct {
	Query string `json:"query" jsonschema_description:"The BigQuery GoogleSQL query to validate and execute" jsonschema:"required"`
}

// RunValidation executes a candidate query read-only and returns either
// query_result rows (capped) or error_message. Results are also stored in
// the query_result state key.
func (t *Tools) RunValidation(ctx context.Context, s core.State, in ValidateSQLInput) (map[string]any, error) {
	query := in.Query
	if query == "" {
		query = s.GetString("sql_query")
	}
	if query == "" {
		return map[string]any{"error_message": "no SQL query to validate"}, nil
	}
	if kw := disallowedStatement(query); kw != "" {
		return map[string]any{
			"error_message": fmt.Sprintf("invalid SQL: contains disallowed DML/DDL operation %s", kw),
		}, nil
	}
	rows, err := readRows(ctx, t.client.Query(query), maxResultRows)
	if err != nil {
		return map[string]any{"error_message": fmt.Sprintf("invalid SQL: %v", err)}, nil
	}
	if len(rows) == 0 {
		return map[string]any{"error_message": "valid SQL; query returned no rows"}, nil
	}
	s.Set("query_result", rows)
	return map[string]any{"query_result": rows}, nil
}

type CheckModelsInput struct {
	DatasetID string `json:"dataset_id" jsonschema_description:"The dataset to inspect for existing BQML models" jsonschema:"required"`
}

// CheckBQModels lists the BQML models already present in a dataset so the
// agent can reuse one instead of training from scratch.
func (t *Tools) CheckBQModels(ctx context.Context, in CheckModelsInput) (map[string]any, error) {
	dataset := t.client.DatasetInProject(t.cfg.BQDataProjectID, in.DatasetID)
	var models []map[string]any
	it := dataset.Models(ctx)
	for {
		model, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return map[string]any{"status": "error", "error": err.Error()}, nil
		}
		entry := map[string]any{"model_id": model.ModelID}
		if meta, err := model.Metadata(ctx); err == nil {
			entry["model_type"] = string(meta.Type)
		}
		models = append(models, entry)
	}
	if len(models) == 0 {
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("No BQML models found in dataset %q.", in.DatasetID),
		}, nil
	}
	return map[string]any{"status": "success", "models": models}, nil
}

type ExecuteSQLInput struct {
	Query string `json:"query" jsonschema_description:"The BigQuery GoogleSQL statement to execute" jsonschema:"required"`
}

// ExecuteSQL runs a statement with writes allowed. BQML training needs
// CREATE MODEL, so unlike the validation path nothing is blocked here.
func (t *Tools) ExecuteSQL(ctx context.Context, in ExecuteSQLInput) (map[string]any, error) {
	rows, err := readRows(ctx, t.client.Query(in.Query), maxResultRows)
	if err != nil {
		return map[string]any{"status": "error", "error": err.Error()}, nil
	}
	return map[string]any{"status": "success", "rows": rows, "row_count": len(rows)}, nil
}

// stripSQLFences removes markdown code fences the model tends to wrap SQL in.
func stripSQLFences(s string) string {
	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// disallowedStatement reports the first DML/DDL keyword found in a query
// meant to be read-only, or "" when the query is clean.
func disallowedStatement(query string) string {
	upper := strings.ToUpper(query)
	for _, kw := range []string{"UPDATE ", "DELETE ", "DROP ", "INSERT ", "TRUNCATE ", "ALTER ", "CREATE ", "MERGE "} {
		if strings.Contains(upper, kw) {
			return strings.TrimSpace(kw)
		}
	}
	return ""
}

func readRows(ctx context.Context, q *bigquery.Query, limit int) ([]map[string]any, error) {
	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	for len(rows) < limit {
		var row map[string]bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		converted := make(map[string]any, len(row))
		for k, v := range row {
			converted[k] = v
		}
		rows = append(rows, converted)
	}
	return rows, nil
}
