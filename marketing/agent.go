package marketing

import (
	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// New builds the website creator agent.
func New(cfg *config.Config, llm core.LLM) *core.LLMAgent {
	return &core.LLMAgent{
		AgentName:   "website_create_agent",
		Desc:        "Creates a complete single-page website for a brand.",
		Model:       cfg.RootAgentModel,
		Instruction: websiteCreatePrompt,
		Tools: []*core.Tool{
			core.MustTool("fetch_reference_site",
				"Scrapes a reference website's headings, navigation and description for design inspiration.",
				FetchReferenceSite),
		},
		OutputKey: "website_create_output",
		LLM:       llm,
	}
}
