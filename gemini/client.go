// Package gemini wraps the google.golang.org/genai client behind the core
// LLM interface.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"cloudsuite/agent-apps/config"
)

type Client struct {
	client *genai.Client
}

// NewClient builds a genai client against either the Gemini API (API key)
// or Vertex AI (project/location), per configuration.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	var clientCfg *genai.ClientConfig
	if cfg.UseVertexAI {
		clientCfg = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.ProjectID,
			Location: cfg.Location,
		}
	} else {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY is required when not using Vertex AI")
		}
		clientCfg = &genai.ClientConfig{
			Backend: genai.BackendGeminiAPI,
			APIKey:  cfg.APIKey,
		}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client}, nil
}

// Generate makes a single generate-content call. No retry: failures
// propagate to the caller as-is.
func (c *Client) Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	result, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, err
	}
	if result.UsageMetadata != nil {
		slog.Debug("generate content",
			"model", model,
			"input_tokens", result.UsageMetadata.PromptTokenCount,
			"output_tokens", result.UsageMetadata.CandidatesTokenCount,
		)
	}
	return result, nil
}

// Raw exposes the underlying genai client for the live (bidirectional)
// API used by the realtime app.
func (c *Client) Raw() *genai.Client {
	return c.client
}
