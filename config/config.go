// Package config loads the shared configuration for all agent apps from
// environment variables (optionally seeded from a .env file) with an
// optional agent-apps.yaml overlay for per-agent model overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Google Cloud
	ProjectID   string `yaml:"project_id" validate:"required"`
	Location    string `yaml:"location"`
	UseVertexAI bool   `yaml:"use_vertex_ai"`
	APIKey      string `yaml:"-"`

	// Models
	RootAgentModel string `yaml:"root_agent_model"`
	WorkerModel    string `yaml:"worker_model"`
	CriticModel    string `yaml:"critic_model"`
	FlashModel     string `yaml:"flash_model"`
	JudgeModel     string `yaml:"judge_model"`
	LiveModel      string `yaml:"live_model"`

	// Dataform
	DataformRepository string `yaml:"dataform_repository"`
	DataformWorkspace  string `yaml:"dataform_workspace"`

	// Data science
	BQDataProjectID    string `yaml:"bq_data_project_id"`
	BQComputeProjectID string `yaml:"bq_compute_project_id"`
	BQDatasetID        string `yaml:"bq_dataset_id"`

	// Medical pre-authorization
	ReportBucket string `yaml:"report_bucket"`
	PolicyBucket string `yaml:"policy_bucket"`

	// Model Armor
	ModelArmorTemplateID string `yaml:"model_armor_template_id"`

	// Realtime agent
	AppName       string `yaml:"app_name"`
	AgentVoice    string `yaml:"agent_voice"`
	AgentLanguage string `yaml:"agent_language"`

	// Server
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present, matching how each agent app ships its
// own env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ProjectID:            envOr("GOOGLE_CLOUD_PROJECT", os.Getenv("GCP_PROJECT_ID")),
		Location:             strings.ToLower(envOr("GOOGLE_CLOUD_LOCATION", "us-central1")),
		UseVertexAI:          os.Getenv("GOOGLE_GENAI_USE_VERTEXAI") == "1",
		APIKey:               os.Getenv("GOOGLE_API_KEY"),
		RootAgentModel:       envOr("ROOT_AGENT_MODEL", "gemini-2.5-pro"),
		WorkerModel:          envOr("WORKER_MODEL", "gemini-2.5-flash"),
		CriticModel:          envOr("CRITIC_MODEL", "gemini-2.5-pro"),
		FlashModel:           envOr("FLASH_MODEL", "gemini-2.5-flash"),
		JudgeModel:           envOr("JUDGE_MODEL", "gemini-2.5-flash-lite"),
		LiveModel:            envOr("LIVE_MODEL", "gemini-live-2.5-flash-preview-native-audio"),
		DataformRepository:   envOr("DATAFORM_REPOSITORY_NAME", "default-repository"),
		DataformWorkspace:    envOr("DATAFORM_WORKSPACE_NAME", "default-workspace"),
		BQDataProjectID:      os.Getenv("BQ_DATA_PROJECT_ID"),
		BQComputeProjectID:   os.Getenv("BQ_COMPUTE_PROJECT_ID"),
		BQDatasetID:          os.Getenv("BQ_DATASET_ID"),
		ReportBucket:         os.Getenv("REPORT_STORAGE_BUCKET"),
		PolicyBucket:         os.Getenv("POLICY_STORAGE_BUCKET"),
		ModelArmorTemplateID: os.Getenv("MODEL_ARMOR_TEMPLATE_ID"),
		AppName:              envOr("APP_NAME", "agent-apps"),
		AgentVoice:           envOr("AGENT_VOICE", "Aoede"),
		AgentLanguage:        envOr("AGENT_LANGUAGE", "en-US"),
		ListenAddr:           envOr("LISTEN_ADDR", ":8080"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
	}

	if cfg.BQDataProjectID == "" {
		cfg.BQDataProjectID = cfg.ProjectID
	}
	if cfg.BQComputeProjectID == "" {
		cfg.BQComputeProjectID = cfg.ProjectID
	}

	if path := envOr("AGENT_APPS_CONFIG", "agent-apps.yaml"); path != "" {
		if err := cfg.applyOverlay(path); err != nil {
			return nil, err
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyOverlay merges a yaml file over the env-derived config. A missing
// file is not an error.
func (c *Config) applyOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ProjectLocation returns the project and location in the dotted format
// BigQuery and Dataform expect.
func (c *Config) ProjectLocation() string {
	return fmt.Sprintf("%s.%s", c.ProjectID, c.Location)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
