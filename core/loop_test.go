package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// stubAgent counts its runs and executes an optional callback against the
// invocation.
type stubAgent struct {
	name    string
	runs    int
	onRun   func(inv *Invocation)
	content *genai.Content
}

func (a *stubAgent) Name() string        { return a.name }
func (a *stubAgent) Description() string { return "Stub agent " + a.name }

func (a *stubAgent) Run(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	a.runs++
	if a.onRun != nil {
		a.onRun(inv)
	}
	return a.content, nil
}

func newTestInvocation() *Invocation {
	return NewInvocation(NewSession("tester"), TextContent(genai.RoleUser, "go"), nil)
}

func TestLoopAgentRunsUntilCap(t *testing.T) {
	worker := &stubAgent{name: "worker"}
	loop := &LoopAgent{AgentName: "loop", SubAgents: []Agent{worker}, MaxIterations: 4}

	_, err := loop.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	assert.Equal(t, 4, worker.runs)
}

func TestLoopAgentDefaultCap(t *testing.T) {
	worker := &stubAgent{name: "worker"}
	loop := &LoopAgent{AgentName: "loop", SubAgents: []Agent{worker}}

	_, err := loop.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxIterations, worker.runs)
}

func TestLoopAgentStopsOnEscalation(t *testing.T) {
	worker := &stubAgent{name: "worker", content: TextContent(genai.RoleModel, "draft")}
	checker := &stubAgent{name: "checker", onRun: func(inv *Invocation) {
		inv.Escalate()
	}}
	loop := &LoopAgent{AgentName: "loop", SubAgents: []Agent{worker, checker}, MaxIterations: 5}

	inv := newTestInvocation()
	out, err := loop.Run(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, 1, worker.runs)
	assert.Equal(t, "draft", contentText(out))
	// The escalation is consumed by the loop that handled it.
	assert.False(t, inv.escalated)
}

func TestLoopAgentEscalationDoesNotReachOuterLoop(t *testing.T) {
	inner := &LoopAgent{
		AgentName: "inner",
		SubAgents: []Agent{&stubAgent{name: "escalator", onRun: func(inv *Invocation) {
			inv.Escalate()
		}}},
		MaxIterations: 5,
	}
	outer := &LoopAgent{AgentName: "outer", SubAgents: []Agent{inner}, MaxIterations: 2}

	_, err := outer.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	// The inner loop stops after one iteration each time, but the outer loop
	// still runs its full two iterations.
	assert.Equal(t, 2, inner.SubAgents[0].(*stubAgent).runs)
}

func TestLoopAgentAfterAgent(t *testing.T) {
	worker := &stubAgent{name: "worker", content: TextContent(genai.RoleModel, "noisy")}
	loop := &LoopAgent{
		AgentName:     "loop",
		SubAgents:     []Agent{worker},
		MaxIterations: 1,
		AfterAgent: func(inv *Invocation, content *genai.Content) *genai.Content {
			return nil
		},
	}

	out, err := loop.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestStateKeyChecker(t *testing.T) {
	checker := &StateKeyChecker{AgentName: "checker", Key: "blog_outline"}

	inv := newTestInvocation()
	_, err := checker.Run(context.Background(), inv)
	require.NoError(t, err)
	assert.False(t, inv.escalated)

	inv.Session.State.Set("blog_outline", "1. Intro")
	_, err = checker.Run(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, inv.escalated)
}
