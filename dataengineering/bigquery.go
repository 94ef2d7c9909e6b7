package dataengineering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"cloudsuite/agent-apps/config"
)

// maxQueryRows caps result sets handed back to the model.
const maxQueryRows = 100

// BigQueryTools wraps the read-side BigQuery operations the ELT agent uses.
// Every method returns a status dictionary; expected failures (bad SQL,
// missing tables) come back as data, not errors.
type BigQueryTools struct {
	client *bigquery.Client
	cfg    *config.Config
}

func NewBigQueryTools(ctx context.Context, cfg *config.Config) (*BigQueryTools, error) {
	client, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create bigquery client: %w", err)
	}
	return &BigQueryTools{client: client, cfg: cfg}, nil
}

type JobDetailsInput struct {
	JobID string `json:"job_id" jsonschema_description:"The ID of the BigQuery job" jsonschema:"required"`
}

// JobDetails retrieves query text, state and error information for a job.
func (t *BigQueryTools) JobDetails(ctx context.Context, in JobDetailsInput) (map[string]any, error) {
	job, err := t.client.JobFromID(ctx, in.JobID)
	if err != nil {
		return errResult(fmt.Sprintf("error getting job details: %v", err)), nil
	}
	status := job.LastStatus()
	query := "N/A"
	if cfg, err := job.Config(); err == nil {
		if qc, ok := cfg.(*bigquery.QueryConfig); ok {
			query = qc.Q
		}
	}
	result := map[string]any{
		"status":  "success",
		"query":   query,
		"state":   jobState(status.State),
		"created": status.Statistics.CreationTime.Format(time.RFC3339),
	}
	if !status.Statistics.StartTime.IsZero() {
		result["started"] = status.Statistics.StartTime.Format(time.RFC3339)
	}
	if !status.Statistics.EndTime.IsZero() {
		result["ended"] = status.Statistics.EndTime.Format(time.RFC3339)
	}
	if err := status.Err(); err != nil {
		result["error"] = err.Error()
	}
	return result, nil
}

type ListRoutinesInput struct {
	DatasetID   string `json:"dataset_id" jsonschema_description:"The dataset ID to search" jsonschema:"required"`
	RoutineType string `json:"routine_type,omitempty" jsonschema_description:"Optional filter: FUNCTION or PROCEDURE"`
}

// ListRoutines retrieves UDFs and stored procedures from a dataset via
// INFORMATION_SCHEMA.ROUTINES.
func (t *BigQueryTools) ListRoutines(ctx context.Context, in ListRoutinesInput) (map[string]any, error) {
	query := fmt.Sprintf(`
		SELECT routine_name, routine_type, routine_body, specific_name, ddl, created, last_modified
		FROM `+"`%s.%s.INFORMATION_SCHEMA.ROUTINES`", t.cfg.ProjectID, in.DatasetID)
	q := t.client.Query(query)
	if in.RoutineType != "" {
		q = t.client.Query(query + " WHERE routine_type = @routine_type ORDER BY routine_type, routine_name")
		q.Parameters = []bigquery.QueryParameter{{Name: "routine_type", Value: in.RoutineType}}
	}
	rows, err := readAllRows(ctx, q, maxQueryRows)
	if err != nil {
		return errResult(fmt.Sprintf("error retrieving routines from dataset %q: %v", in.DatasetID, err)), nil
	}
	if len(rows) == 0 {
		return map[string]any{
			"status":  "success",
			"message": fmt.Sprintf("No routines found in dataset %q.", in.DatasetID),
		}, nil
	}
	return map[string]any{"status": "success", "routines": rows}, nil
}

type ValidationRule struct {
	Column string `json:"column" jsonschema_description:"Column to validate" jsonschema:"required"`
	Type   string `json:"type" jsonschema_description:"Rule type: not_null, unique or value" jsonschema:"required"`
	Value  string `json:"value,omitempty" jsonschema_description:"Expected value for rule type 'value'"`
}

type ValidateTableInput struct {
	DatasetID string           `json:"dataset_id" jsonschema_description:"The dataset ID" jsonschema:"required"`
	TableID   string           `json:"table_id" jsonschema_description:"The table ID" jsonschema:"required"`
	Rules     []ValidationRule `json:"rules" jsonschema_description:"Validation rules to apply" jsonschema:"required"`
}

// ValidateTableData checks table contents against not_null/unique/value
// rules. Each rule produces a pass/fail/error entry; a failing rule is not
// an error.
func (t *BigQueryTools) ValidateTableData(ctx context.Context, in ValidateTableInput) (map[string]any, error) {
	validations := make([]map[string]any, 0, len(in.Rules))
	for _, rule := range in.Rules {
		query, err := buildValidationQuery(t.cfg.ProjectID, in.DatasetID, in.TableID, rule)
		if err != nil {
			validations = append(validations, map[string]any{
				"rule": rule, "status": "error", "message": err.Error(),
			})
			continue
		}
		rows, err := readAllRows(ctx, t.client.Query(query), 1)
		if err != nil {
			validations = append(validations, map[string]any{
				"rule": rule, "status": "error", "message": err.Error(),
			})
			continue
		}
		status := "pass"
		var details map[string]any
		if len(rows) > 0 {
			details = rows[0]
			for _, v := range rows[0] {
				if count, ok := v.(int64); ok && count != 0 {
					status = "fail"
				}
			}
		}
		validations = append(validations, map[string]any{
			"rule": rule, "status": status, "details": details,
		})
	}
	return map[string]any{
		"status":      "success",
		"dataset":     in.DatasetID,
		"table":       in.TableID,
		"validations": validations,
	}, nil
}

type SampleTableInput struct {
	DatasetID  string `json:"dataset_id" jsonschema_description:"The dataset ID" jsonschema:"required"`
	TableID    string `json:"table_id" jsonschema_description:"The table ID" jsonschema:"required"`
	SampleSize int    `json:"sample_size,omitempty" jsonschema_description:"Number of rows to sample, default 10"`
}

// SampleTableData samples rows from a table using RAND() ordering.
func (t *BigQueryTools) SampleTableData(ctx context.Context, in SampleTableInput) (map[string]any, error) {
	size := in.SampleSize
	if size <= 0 {
		size = 10
	}
	if size > maxQueryRows {
		size = maxQueryRows
	}
	query := fmt.Sprintf("SELECT * FROM `%s.%s.%s` ORDER BY RAND() LIMIT %d",
		t.cfg.ProjectID, in.DatasetID, in.TableID, size)
	rows, err := readAllRows(ctx, t.client.Query(query), size)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return map[string]any{
		"status":      "success",
		"dataset":     in.DatasetID,
		"table":       in.TableID,
		"sample_size": size,
		"data":        rows,
	}, nil
}

type ExecuteSQLInput struct {
	Query string `json:"query" jsonschema_description:"The GoogleSQL query to execute" jsonschema:"required"`
}

// ExecuteSQL runs a read-only query and returns up to maxQueryRows rows.
// Write statements are rejected before reaching BigQuery.
func (t *BigQueryTools) ExecuteSQL(ctx context.Context, in ExecuteSQLInput) (map[string]any, error) {
	if err := checkReadOnly(in.Query); err != nil {
		return errResult(err.Error()), nil
	}
	rows, err := readAllRows(ctx, t.client.Query(in.Query), maxQueryRows)
	if err != nil {
		return errResult(err.Error()), nil
	}
	return map[string]any{"status": "success", "rows": rows, "row_count": len(rows)}, nil
}

// buildValidationQuery constructs the check query for one validation rule.
func buildValidationQuery(project, dataset, table string, rule ValidationRule) (string, error) {
	target := fmt.Sprintf("`%s.%s.%s`", project, dataset, table)
	switch rule.Type {
	case "not_null":
		return fmt.Sprintf("SELECT COUNT(*) AS null_count FROM %s WHERE %s IS NULL", target, rule.Column), nil
	case "unique":
		return fmt.Sprintf(
			"SELECT COUNT(*) AS duplicate_count FROM (SELECT %s FROM %s GROUP BY %s HAVING COUNT(*) > 1)",
			rule.Column, target, rule.Column), nil
	case "value":
		if rule.Value == "" {
			return "", fmt.Errorf("rule type 'value' requires a value")
		}
		return fmt.Sprintf("SELECT COUNT(*) AS invalid_count FROM %s WHERE %s != %s", target, rule.Column, rule.Value), nil
	default:
		return "", fmt.Errorf("unknown rule type: %s", rule.Type)
	}
}

func jobState(s bigquery.State) string {
	switch s {
	case bigquery.Pending:
		return "PENDING"
	case bigquery.Running:
		return "RUNNING"
	case bigquery.Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// readAllRows executes a query and materializes up to limit rows as maps.
func readAllRows(ctx context.Context, q *bigquery.Query, limit int) ([]map[string]any, error) {
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
			converted[k] = normalizeValue(v)
		}
		rows = append(rows, converted)
	}
	return rows, nil
}

// normalizeValue makes BigQuery values JSON-serializable.
func normalizeValue(v bigquery.Value) any {
	switch typed := v.(type) {
	case time.Time:
		return typed.Format(time.RFC3339)
	case []bigquery.Value:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]bigquery.Value:
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			out[k] = normalizeValue(item)
		}
		return out
	case []byte:
		return string(typed)
	default:
		return typed
	}
}

// checkReadOnly rejects destructive statements. The ELT agent is told not
// to run them, but the check makes the write block a hard guarantee.
func checkReadOnly(query string) error {
	upper := strings.ToUpper(query)
	for _, kw := range []string{"INSERT ", "UPDATE ", "DELETE ", "DROP ", "TRUNCATE ", "ALTER ", "CREATE ", "MERGE "} {
		if strings.Contains(upper, kw) {
			return fmt.Errorf("write operations are blocked: query contains %s", strings.TrimSpace(kw))
		}
	}
	return nil
}

func errResult(msg string) map[string]any {
	return map[string]any{"status": "error", "error": msg}
}
