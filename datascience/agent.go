package datascience

import (
	"context"
	"fmt"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// New builds the BQML root agent with its NL2SQL database sub-agent. The
// root seeds the dataset schema into session state before every run and
// inlines it into its own instruction.
func New(ctx context.Context, cfg *config.Config, llm core.LLM) (*core.LLMAgent, error) {
	tools, err := NewTools(ctx, cfg, llm)
	if err != nil {
		return nil, err
	}

	dbAgent := &core.LLMAgent{
		AgentName:   "database_agent",
		Desc:        "Answers natural language questions over the BigQuery dataset by generating and validating SQL.",
		Model:       cfg.FlashModel,
		Instruction: fmt.Sprintf(bigqueryInstruction, cfg.BQComputeProjectID),
		Tools: []*core.Tool{
			core.MustTool("initial_bq_nl2sql",
				"Generates an initial GoogleSQL query from a natural language question.",
				tools.InitialNL2SQL),
			core.MustTool("run_bigquery_validation",
				"Validates and executes a BigQuery SQL query, returning capped results or an error message.",
				tools.RunValidation),
		},
		OutputKey: "db_agent_output",
		LLM:       llm,
	}

	return &core.LLMAgent{
		AgentName: "bq_ml_agent",
		Desc:      "BigQuery ML expert that trains, evaluates and applies models over the configured dataset.",
		Model:     cfg.RootAgentModel,
		BeforeAgent: func(ctx context.Context, inv *core.Invocation) error {
			if inv.Session.State.Has("database_settings") {
				return nil
			}
			settings, err := tools.DatabaseSettings(ctx)
			if err != nil {
				return fmt.Errorf("load database settings: %w", err)
			}
			inv.Session.State.Set("database_settings", settings)
			return nil
		},
		InstructionFn: func(s core.State) string {
			instruction := bqmlInstruction
			raw, _ := s.Get("database_settings")
			if settings, ok := raw.(map[string]any); ok {
				if schema, ok := settings["bq_schema_and_samples"].(string); ok && schema != "" {
					instruction += fmt.Sprintf("\n\n<The BigQuery schema of the relevant data with a few sample rows>\n%s\n</The BigQuery schema of the relevant data with a few sample rows>\n", schema)
				}
			}
			return instruction
		},
		Tools: []*core.Tool{
			core.MustTool("execute_sql",
				"Executes a BigQuery GoogleSQL statement, including BQML CREATE MODEL statements.",
				tools.ExecuteSQL),
			core.MustTool("check_bq_models",
				"Lists the BQML models that already exist in a dataset.",
				tools.CheckBQModels),
		},
		SubAgents: []core.Agent{dbAgent},
		LLM:       llm,
	}, nil
}
