package core

import (
	"context"

	"google.golang.org/genai"
)

// agentToolInput is the argument shape sub-agents are called with when
// exposed to the model as transfer tools.
type agentToolInput struct {
	Request string `json:"request" jsonschema_description:"The request to forward to the agent" jsonschema:"required"`
}

// agentTool wraps a sub-agent as a callable tool. The sub-agent runs inside
// the same invocation, so it reads and writes the same state bag; its final
// text is returned as the tool result and, through its own OutputKey, may
// land in state for downstream steps.
func agentTool(sub Agent, inv *Invocation) *Tool {
	handler := func(ctx context.Context, in agentToolInput) (map[string]any, error) {
		subInv := &Invocation{
			Session:     inv.Session,
			UserContent: TextContent(genai.RoleUser, in.Request),
			plugins:     inv.plugins,
		}
		out, err := sub.Run(ctx, subInv)
		if err != nil {
			return map[string]any{"status": "error", "error": err.Error()}, nil
		}
		return map[string]any{"status": "success", "response": contentText(out)}, nil
	}
	return MustTool(sub.Name(), sub.Description(), handler)
}
