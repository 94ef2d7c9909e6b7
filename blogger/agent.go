package blogger

import (
	"fmt"
	"time"

	"google.golang.org/genai"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// suppressOutput drops an intermediate agent's content so only state keys
// flow to the next step.
func suppressOutput(inv *core.Invocation, c *genai.Content) *genai.Content { return nil }

// New builds the interactive blogging assistant: a root agent that plans,
// writes, edits and promotes a technical blog post in collaboration with
// the user. Planner and writer are wrapped in bounded retry loops keyed on
// their output state.
func New(cfg *config.Config, llm core.LLM) *core.LLMAgent {
	researchTool := core.MustTool("research_topic",
		"Fetches a web page and extracts its title, headings and paragraphs for research.",
		ResearchTopic)

	planner := &core.LLMAgent{
		AgentName:   "blog_planner",
		Desc:        "Generates a blog post outline.",
		Model:       cfg.WorkerModel,
		Instruction: plannerInstruction,
		Tools:       []*core.Tool{researchTool},
		OutputKey:   "blog_outline",
		AfterAgent:  suppressOutput,
		LLM:         llm,
	}
	robustPlanner := &core.LoopAgent{
		AgentName: "robust_blog_planner",
		Desc:      "A robust blog planner that retries if it fails.",
		SubAgents: []core.Agent{
			planner,
			&core.StateKeyChecker{AgentName: "outline_validation_checker", Key: "blog_outline"},
		},
		MaxIterations: core.DefaultMaxIterations,
		AfterAgent:    suppressOutput,
	}

	writer := &core.LLMAgent{
		AgentName:   "blog_writer",
		Desc:        "Writes a technical blog post.",
		Model:       cfg.CriticModel,
		Instruction: writerInstruction,
		Tools:       []*core.Tool{researchTool},
		OutputKey:   "blog_post",
		AfterAgent:  suppressOutput,
		LLM:         llm,
	}
	robustWriter := &core.LoopAgent{
		AgentName: "robust_blog_writer",
		Desc:      "A robust blog writer that retries if it fails.",
		SubAgents: []core.Agent{
			writer,
			&core.StateKeyChecker{AgentName: "blog_post_validation_checker", Key: "blog_post"},
		},
		MaxIterations: core.DefaultMaxIterations,
	}

	editor := &core.LLMAgent{
		AgentName:   "blog_editor",
		Desc:        "Edits a technical blog post based on user feedback.",
		Model:       cfg.CriticModel,
		Instruction: editorInstruction,
		OutputKey:   "blog_post",
		AfterAgent:  suppressOutput,
		LLM:         llm,
	}

	socialWriter := &core.LLMAgent{
		AgentName:   "social_media_writer",
		Desc:        "Writes social media posts to promote the blog post.",
		Model:       cfg.CriticModel,
		Instruction: socialInstruction,
		OutputKey:   "social_media_posts",
		LLM:         llm,
	}

	return &core.LLMAgent{
		AgentName:   "interactive_blogger_agent",
		Desc:        "The primary technical blogging assistant. It collaborates with the user to create a blog post.",
		Model:       cfg.WorkerModel,
		Instruction: fmt.Sprintf(rootInstruction, time.Now().Format("2006-01-02")),
		SubAgents:   []core.Agent{robustWriter, robustPlanner, editor, socialWriter},
		Tools: []*core.Tool{
			core.MustTool("save_blog_post_to_file",
				"Saves the blog post to a markdown file.",
				SaveBlogPost),
			core.MustTool("analyze_codebase",
				"Analyzes a local codebase directory and summarizes its structure and content.",
				AnalyzeCodebase),
		},
		OutputKey: "blog_outline",
		LLM:       llm,
	}
}
