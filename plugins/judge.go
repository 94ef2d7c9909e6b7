// Package plugins provides content-safety filter plugins that hook into the
// runner: an LLM-as-a-judge jailbreak filter and a Model Armor filter.
package plugins

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"cloudsuite/agent-apps/core"
)

// Replacement messages surfaced when a filter removes content.
const (
	UserPromptRemovedMessage    = "A safety filter has removed the last user prompt as it was deemed unsafe."
	UnsafeToolInputMessage      = "Unable to call tool due to unsafe inputs."
	UnsafeToolOutputMessage     = "Unable to emit tool result due to unsafe tool output."
	ModelResponseRemovedMessage = "A safety filter has removed the model's response as it was deemed unsafe."
)

// promptSafeKey flags an unsafe user prompt between the user-message and
// before-run callbacks.
const promptSafeKey = "is_user_prompt_safe"

// JudgeOn names the callbacks the judge can run on.
type JudgeOn string

const (
	JudgeOnUserMessage    JudgeOn = "user_message"
	JudgeOnBeforeToolCall JudgeOn = "before_tool_call"
	JudgeOnToolOutput     JudgeOn = "tool_output"
	JudgeOnModelOutput    JudgeOn = "model_output"
)

// DefaultAnalysisParser treats any verdict containing UNSAFE as unsafe.
func DefaultAnalysisParser(analysis string) bool {
	return strings.Contains(analysis, "UNSAFE")
}

// LLMAsAJudge runs a judge model over selected runner callbacks and
// replaces content the judge flags as unsafe. Judge call failures propagate
// as ordinary errors.
type LLMAsAJudge struct {
	llm         core.LLM
	model       string
	instruction string
	parser      func(analysis string) bool
	judgeOn     map[JudgeOn]bool
}

// JudgeOption customizes an LLMAsAJudge.
type JudgeOption func(*LLMAsAJudge)

// WithAnalysisParser replaces the verdict parser. The parser returns true
// when the judged text is unsafe.
func WithAnalysisParser(parser func(string) bool) JudgeOption {
	return func(j *LLMAsAJudge) { j.parser = parser }
}

// WithJudgeOn replaces the set of callbacks the judge runs on.
func WithJudgeOn(on ...JudgeOn) JudgeOption {
	return func(j *LLMAsAJudge) {
		j.judgeOn = make(map[JudgeOn]bool, len(on))
		for _, o := range on {
			j.judgeOn[o] = true
		}
	}
}

// WithJudgeInstruction replaces the judge's system instruction.
func WithJudgeInstruction(instruction string) JudgeOption {
	return func(j *LLMAsAJudge) { j.instruction = instruction }
}

// NewLLMAsAJudge builds the judge plugin. By default it judges user
// messages and tool outputs against the jailbreak filter instruction.
func NewLLMAsAJudge(llm core.LLM, model string, opts ...JudgeOption) *LLMAsAJudge {
	j := &LLMAsAJudge{
		llm:         llm,
		model:       model,
		instruction: JailbreakFilterInstruction,
		parser:      DefaultAnalysisParser,
		judgeOn: map[JudgeOn]bool{
			JudgeOnUserMessage: true,
			JudgeOnToolOutput:  true,
		},
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *LLMAsAJudge) PluginName() string { return "judge_agent" }

func (j *LLMAsAJudge) isUnsafe(ctx context.Context, message string) (bool, error) {
	analysis, err := core.GenerateText(ctx, j.llm, j.model, j.instruction, message, nil)
	if err != nil {
		return false, fmt.Errorf("judge call: %w", err)
	}
	unsafe := j.parser(analysis)
	slog.Debug("judge verdict", "analysis", analysis, "is_unsafe", unsafe)
	return unsafe, nil
}

// OnUserMessage flags unsafe prompts in session state and substitutes the
// message; BeforeRun consumes the flag and ends the turn before the model
// sees anything.
func (j *LLMAsAJudge) OnUserMessage(ctx context.Context, inv *core.Invocation, msg *genai.Content) (*genai.Content, error) {
	if !j.judgeOn[JudgeOnUserMessage] {
		return nil, nil
	}
	message := fmt.Sprintf("<user_message>\n%s\n</user_message>", firstPartText(msg))
	unsafe, err := j.isUnsafe(ctx, message)
	if err != nil {
		return nil, err
	}
	if !unsafe {
		return nil, nil
	}
	inv.Session.State.Set(promptSafeKey, false)
	return core.TextContent(genai.RoleUser, UserPromptRemovedMessage), nil
}

func (j *LLMAsAJudge) BeforeRun(ctx context.Context, inv *core.Invocation) (*genai.Content, error) {
	return consumePromptSafeFlag(inv)
}

func (j *LLMAsAJudge) BeforeTool(ctx context.Context, inv *core.Invocation, tool *core.Tool, args map[string]any) (map[string]any, error) {
	if !j.judgeOn[JudgeOnBeforeToolCall] {
		return nil, nil
	}
	message := fmt.Sprintf("<tool_call>\nTool call: %s(%v)\n</tool_call>", tool.Name(), args)
	unsafe, err := j.isUnsafe(ctx, message)
	if err != nil {
		return nil, err
	}
	if !unsafe {
		return nil, nil
	}
	return map[string]any{"error": UnsafeToolInputMessage}, nil
}

func (j *LLMAsAJudge) AfterTool(ctx context.Context, inv *core.Invocation, tool *core.Tool, args map[string]any, result map[string]any) (map[string]any, error) {
	if !j.judgeOn[JudgeOnToolOutput] {
		return nil, nil
	}
	message := fmt.Sprintf("<tool_output>\n%v\n</tool_output>", result)
	unsafe, err := j.isUnsafe(ctx, message)
	if err != nil {
		return nil, err
	}
	if !unsafe {
		return nil, nil
	}
	return map[string]any{"error": UnsafeToolOutputMessage}, nil
}

func (j *LLMAsAJudge) AfterModel(ctx context.Context, inv *core.Invocation, resp *genai.GenerateContentResponse) (*genai.Content, error) {
	if !j.judgeOn[JudgeOnModelOutput] {
		return nil, nil
	}
	output := responseText(resp)
	if output == "" {
		return nil, nil
	}
	message := fmt.Sprintf("<model_output>\n%s\n</model_output>", output)
	unsafe, err := j.isUnsafe(ctx, message)
	if err != nil {
		return nil, err
	}
	if !unsafe {
		return nil, nil
	}
	return core.TextContent(genai.RoleModel, ModelResponseRemovedMessage), nil
}

// consumePromptSafeFlag implements the two-step removal shared by both
// filter plugins: the user-message callback sets the flag, BeforeRun resets
// it and short-circuits the turn with the replacement message.
func consumePromptSafeFlag(inv *core.Invocation) (*genai.Content, error) {
	if inv.Session.State.GetBool(promptSafeKey, true) {
		return nil, nil
	}
	inv.Session.State.Set(promptSafeKey, true)
	return core.TextContent(genai.RoleModel, UserPromptRemovedMessage), nil
}

func firstPartText(c *genai.Content) string {
	if c == nil {
		return ""
	}
	for _, part := range c.Parts {
		if part != nil && part.Text != "" {
			return part.Text
		}
	}
	return ""
}

// responseText joins the text parts of a model response, skipping function
// calls and other non-text parts.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			parts = append(parts, part.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
