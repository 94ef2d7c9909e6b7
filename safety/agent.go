package safety

import (
	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

const rootInstruction = `Please help the user with their requests. You can use the following tools:
* short_sum_tool: This tool can be used to perform a short CPU bound task.
* long_sum_tool: This tool can be used to perform a long CPU bound task.

If the user requests to calculate the Fibonacci number or perform an IO bound task, transfer the request to the sub_agent to help the user.
`

const subAgentInstruction = `Please help the user with their requests. You can use the following tools:
* fib_tool: This tool can be used to find the Fibonacci number at the given index.
* io_bound_tool: This tool can be used to perform a mock IO bound task.
`

// New builds the plugin demo agent tree.
func New(cfg *config.Config, llm core.LLM) *core.LLMAgent {
	sub := &core.LLMAgent{
		AgentName:   "sub_agent",
		Desc:        "Handles Fibonacci and IO bound requests.",
		Model:       cfg.WorkerModel,
		Instruction: subAgentInstruction,
		Tools: []*core.Tool{
			core.MustTool("fib_tool",
				"Finds the Fibonacci number at the given index.", Fib),
			core.MustTool("io_bound_tool",
				"Performs a mock IO bound task.", IOBound),
		},
		LLM: llm,
	}

	return &core.LLMAgent{
		AgentName:   "main_agent",
		Desc:        "Demo agent for exercising the safety plugins.",
		Model:       cfg.WorkerModel,
		Instruction: rootInstruction,
		Tools: []*core.Tool{
			core.MustTool("short_sum_tool",
				"Performs a short CPU bound task.", ShortSum),
			core.MustTool("long_sum_tool",
				"Performs a long CPU bound task.", LongSum),
		},
		SubAgents: []core.Agent{sub},
		LLM:       llm,
	}
}
