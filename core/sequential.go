package core

import (
	"context"

	"google.golang.org/genai"
)

// SequentialAgent runs its sub-agents in a fixed order over the shared
// session. Outputs flow between steps through state keys; the last non-nil
// content is the pipeline's response.
type SequentialAgent struct {
	AgentName string
	Desc      string
	SubAgents []Agent
}

func (s *SequentialAgent) Name() string        { return s.AgentName }
func (s *SequentialAgent) Description() string { return s.Desc }

func (s *SequentialAgent) Run(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	var last *genai.Content
	for _, sub := range s.SubAgents {
		out, err := sub.Run(ctx, inv)
		if err != nil {
			return nil, err
		}
		if out != nil {
			last = out
		}
		if inv.escalated {
			break
		}
	}
	return last, nil
}
