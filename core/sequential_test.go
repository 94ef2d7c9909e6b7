package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSequentialAgentRunsInOrder(t *testing.T) {
	var order []string
	first := &stubAgent{name: "first", onRun: func(inv *Invocation) {
		order = append(order, "first")
		inv.Session.State.Set("step_one", "done")
	}}
	second := &stubAgent{name: "second", onRun: func(inv *Invocation) {
		order = append(order, "second")
		assert.Equal(t, "done", inv.Session.State.GetString("step_one"))
	}, content: TextContent(genai.RoleModel, "final")}

	pipeline := &SequentialAgent{AgentName: "pipeline", SubAgents: []Agent{first, second}}

	inv := newTestInvocation()
	out, err := pipeline.Run(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, "final", contentText(out))
}

func TestSequentialAgentKeepsLastNonNilContent(t *testing.T) {
	talker := &stubAgent{name: "talker", content: TextContent(genai.RoleModel, "answer")}
	silent := &stubAgent{name: "silent"}

	pipeline := &SequentialAgent{AgentName: "pipeline", SubAgents: []Agent{talker, silent}}

	out, err := pipeline.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	assert.Equal(t, "answer", contentText(out))
}

func TestSequentialAgentStopsOnEscalation(t *testing.T) {
	escalator := &stubAgent{name: "escalator", onRun: func(inv *Invocation) {
		inv.Escalate()
	}}
	never := &stubAgent{name: "never"}

	pipeline := &SequentialAgent{AgentName: "pipeline", SubAgents: []Agent{escalator, never}}

	_, err := pipeline.Run(context.Background(), newTestInvocation())
	require.NoError(t, err)
	assert.Equal(t, 1, escalator.runs)
	assert.Equal(t, 0, never.runs)
}
