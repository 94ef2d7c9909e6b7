package core

import (
	"context"

	"google.golang.org/genai"
)

// LLM is the model-serving boundary. Implementations make exactly one
// generate call per invocation; retrying is left to the caller (the bounded
// loop agents are the only place it happens).
type LLM interface {
	Generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GenerateText is a convenience for the single-shot prompt calls some tools
// make (for example NL2SQL generation or treatment-name extraction).
func GenerateText(ctx context.Context, llm LLM, model, systemInstruction, prompt string, temperature *float32) (string, error) {
	cfg := &genai.GenerateContentConfig{Temperature: temperature}
	if systemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}}
	}
	contents := []*genai.Content{
		{Role: string(genai.RoleUser), Parts: []*genai.Part{{Text: prompt}}},
	}
	resp, err := llm.Generate(ctx, model, contents, cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func usageStats(resp *genai.GenerateContentResponse) Stats {
	if resp == nil || resp.UsageMetadata == nil {
		return Stats{}
	}
	return Stats{
		InputTokenCount:  resp.UsageMetadata.PromptTokenCount,
		OutputTokenCount: resp.UsageMetadata.CandidatesTokenCount,
		TotalTokenCount:  resp.UsageMetadata.TotalTokenCount,
	}
}
