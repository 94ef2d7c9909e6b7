package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"
)

// maxToolRounds bounds the generate/dispatch cycle of a single agent run so
// a model stuck calling tools cannot spin forever.
const maxToolRounds = 10

// Agent is a runnable unit of the composition tree: an LLM agent, a
// sequential pipeline, a loop, or a plain check step.
type Agent interface {
	Name() string
	Description() string
	Run(ctx context.Context, inv *Invocation) (*genai.Content, error)
}

// Invocation carries the per-turn context through an agent tree: the
// session (with its state bag), the user content, and the plugin chain.
type Invocation struct {
	Session     *Session
	UserContent *genai.Content
	plugins     []Plugin
	escalated   bool
}

func NewInvocation(session *Session, userContent *genai.Content, plugins []Plugin) *Invocation {
	return &Invocation{Session: session, UserContent: userContent, plugins: plugins}
}

// Escalate signals the innermost enclosing loop agent to stop early.
func (inv *Invocation) Escalate() { inv.escalated = true }

// LLMAgent is a declaratively configured model persona: instruction text,
// model id, tool list and optional sub-agents. Sub-agents are exposed to the
// model as transfer tools.
type LLMAgent struct {
	AgentName   string
	Desc        string
	Model       string
	Instruction string
	// InstructionFn, when set, takes precedence over Instruction and lets an
	// agent derive its system prompt from session state (for example to
	// inline a database schema).
	InstructionFn func(s State) string
	Tools         []*Tool
	SubAgents     []Agent
	// OutputKey, when set, stores the agent's final text into the session
	// state under that key.
	OutputKey   string
	Temperature *float32
	// BeforeAgent runs before the first model call of an agent run. An
	// error aborts the run.
	BeforeAgent func(ctx context.Context, inv *Invocation) error
	// AfterAgent can replace (or suppress, by returning nil) the agent's
	// final content before it propagates to the caller.
	AfterAgent func(inv *Invocation, content *genai.Content) *genai.Content
	LLM         LLM
}

func (a *LLMAgent) Name() string        { return a.AgentName }
func (a *LLMAgent) Description() string { return a.Desc }

func (a *LLMAgent) Run(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	if a.BeforeAgent != nil {
		if err := a.BeforeAgent(ctx, inv); err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.AgentName, err)
		}
	}

	cfg := &genai.GenerateContentConfig{Temperature: a.Temperature}
	if instruction := a.systemInstruction(inv.Session.State); instruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: instruction}}}
	}
	tools := a.allTools(inv)
	if decls := declarations(tools); len(decls) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := make([]*genai.Content, 0, len(inv.Session.History)+1)
	contents = append(contents, inv.Session.History...)
	if inv.UserContent != nil {
		contents = append(contents, inv.UserContent)
	}

	var final *genai.Content
	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.LLM.Generate(ctx, a.Model, contents, cfg)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.AgentName, err)
		}
		inv.Session.Usage.Add(usageStats(resp))

		if replaced, err := afterModel(ctx, inv, resp); err != nil {
			return nil, err
		} else if replaced != nil {
			final = replaced
			break
		}

		modelContent := responseContent(resp)
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			final = modelContent
			break
		}

		contents = append(contents, modelContent)
		parts := make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			result, err := a.dispatch(ctx, inv, tools, call)
			if err != nil {
				return nil, err
			}
			parts = append(parts, &genai.Part{FunctionResponse: &genai.FunctionResponse{
				Name:     call.Name,
				Response: result,
			}})
		}
		contents = append(contents, &genai.Content{Role: string(genai.RoleUser), Parts: parts})
	}

	if final != nil && a.OutputKey != "" {
		if text := contentText(final); text != "" {
			inv.Session.State.Set(a.OutputKey, text)
		}
	}
	if a.AfterAgent != nil {
		final = a.AfterAgent(inv, final)
	}
	return final, nil
}

func (a *LLMAgent) systemInstruction(s State) string {
	if a.InstructionFn != nil {
		return a.InstructionFn(s)
	}
	return injectState(a.Instruction, s)
}

func (a *LLMAgent) allTools(inv *Invocation) []*Tool {
	tools := make([]*Tool, 0, len(a.Tools)+len(a.SubAgents))
	tools = append(tools, a.Tools...)
	for _, sub := range a.SubAgents {
		tools = append(tools, agentTool(sub, inv))
	}
	return tools
}

func (a *LLMAgent) dispatch(ctx context.Context, inv *Invocation, tools []*Tool, call *genai.FunctionCall) (map[string]any, error) {
	tool := findTool(tools, call.Name)
	if tool == nil {
		return map[string]any{"status": "error", "error": fmt.Sprintf("tool %s not found", call.Name)}, nil
	}
	slog.Debug("tool call", "agent", a.AgentName, "tool", call.Name)

	args := call.Args
	if replaced, err := beforeTool(ctx, inv, tool, args); err != nil {
		return nil, err
	} else if replaced != nil {
		return replaced, nil
	}

	result, err := tool.Call(ctx, inv.Session.State, args)
	if err != nil {
		return nil, err
	}

	if replaced, err := afterTool(ctx, inv, tool, args, result); err != nil {
		return nil, err
	} else if replaced != nil {
		return replaced, nil
	}
	return result, nil
}

func findTool(tools []*Tool, name string) *Tool {
	for _, t := range tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func declarations(tools []*Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, t.Declaration())
	}
	return decls
}

func responseContent(resp *genai.GenerateContentResponse) *genai.Content {
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		return resp.Candidates[0].Content
	}
	return &genai.Content{Role: string(genai.RoleModel), Parts: []*genai.Part{{Text: resp.Text()}}}
}

func contentText(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range c.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

// injectState substitutes {key} placeholders in an instruction with values
// from the state bag. Unknown placeholders are left untouched.
func injectState(instruction string, s State) string {
	if !strings.Contains(instruction, "{") {
		return instruction
	}
	result := instruction
	for key, value := range s {
		if str, ok := value.(string); ok {
			result = strings.ReplaceAll(result, "{"+key+"}", str)
		}
	}
	return result
}

// TextContent builds a single-part content with the given role.
func TextContent(role genai.Role, text string) *genai.Content {
	return &genai.Content{Role: string(role), Parts: []*genai.Part{{Text: text}}}
}
