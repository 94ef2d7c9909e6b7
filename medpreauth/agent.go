package medpreauth

import (
	"context"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// New builds the pre-authorization root agent with its two worker
// sub-agents: document information extraction and decision analysis.
func New(ctx context.Context, cfg *config.Config, llm core.LLM) (*core.LLMAgent, error) {
	tools, err := NewTools(ctx, cfg, llm)
	if err != nil {
		return nil, err
	}
	temperature := float32(0.2)

	extractor := &core.LLMAgent{
		AgentName:   "information_extractor",
		Desc:        "Extracts the details on user insurance policy and medical necessity for a pre-authorization request from documents provided by the user.",
		Model:       cfg.FlashModel,
		Instruction: extractorInstruction,
		Temperature: &temperature,
		Tools: []*core.Tool{
			core.MustTool("extract_treatment_name",
				"Extracts the treatment name from the user's pre-authorization request.",
				tools.ExtractTreatmentName),
			core.MustTool("extract_policy_information",
				"Extracts coverage details for a treatment from the insurance policy PDF.",
				tools.ExtractPolicyInformation).PropagateErrors(),
			core.MustTool("extract_medical_details",
				"Extracts medical record details for a treatment from the medical report PDF.",
				tools.ExtractMedicalDetails).PropagateErrors(),
		},
		LLM: llm,
	}

	analyst := &core.LLMAgent{
		AgentName:   "data_analyst",
		Desc:        "Analyzes the details on user insurance policy and medical necessity for a pre-authorization request and creates a report on the same.",
		Model:       cfg.FlashModel,
		Instruction: analystInstruction,
		Temperature: &temperature,
		Tools: []*core.Tool{
			core.MustTool("store_pdf",
				"Renders the decision report as a PDF and uploads it to the report bucket.",
				tools.StorePDF).PropagateErrors(),
		},
		LLM: llm,
	}

	return &core.LLMAgent{
		AgentName:   "root_agent",
		Desc:        "As a medical pre-authorization agent, you process user pre-auth request for a treatment.",
		Model:       cfg.FlashModel,
		Instruction: rootInstruction,
		Temperature: &temperature,
		SubAgents:   []core.Agent{extractor, analyst},
		LLM:         llm,
	}, nil
}
