package core

import (
	"context"

	"google.golang.org/genai"
)

// DefaultMaxIterations is the iteration cap used by every loop agent in
// this suite.
const DefaultMaxIterations = 3

// LoopAgent re-runs its sub-agents until one of them escalates or the
// iteration cap is reached. Exhausting the cap is not an error: the loop
// simply stops, and a missing output key is accepted silently downstream.
type LoopAgent struct {
	AgentName     string
	Desc          string
	SubAgents     []Agent
	MaxIterations int
	AfterAgent    func(inv *Invocation, content *genai.Content) *genai.Content
}

func (l *LoopAgent) Name() string        { return l.AgentName }
func (l *LoopAgent) Description() string { return l.Desc }

func (l *LoopAgent) Run(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	max := l.MaxIterations
	if max <= 0 {
		max = DefaultMaxIterations
	}
	var last *genai.Content
	for i := 0; i < max; i++ {
		stopped := false
		for _, sub := range l.SubAgents {
			out, err := sub.Run(ctx, inv)
			if err != nil {
				return nil, err
			}
			if out != nil {
				last = out
			}
			if inv.escalated {
				// The escalation is consumed here; it does not propagate to
				// an outer loop.
				inv.escalated = false
				stopped = true
				break
			}
		}
		if stopped {
			break
		}
	}
	if l.AfterAgent != nil {
		last = l.AfterAgent(inv, last)
	}
	return last, nil
}

// StateKeyChecker escalates when the watched state key is populated,
// signalling the enclosing loop that the generation step succeeded.
type StateKeyChecker struct {
	AgentName string
	Key       string
}

func (c *StateKeyChecker) Name() string        { return c.AgentName }
func (c *StateKeyChecker) Description() string { return "Checks that " + c.Key + " is populated." }

func (c *StateKeyChecker) Run(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	if inv.Session.State.GetString(c.Key) != "" {
		inv.Escalate()
	}
	return nil, nil
}
