// Command safetychat runs a terminal conversation with the safety demo
// agent, optionally guarded by one of the content-safety plugins.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
	"cloudsuite/agent-apps/gemini"
	"cloudsuite/agent-apps/logging"
	"cloudsuite/agent-apps/plugins"
	"cloudsuite/agent-apps/safety"
)

const userID = "user"

var cli struct {
	Plugin string `help:"Safety plugin to enable." enum:"llm_judge,model_armor,none" default:"none"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("safetychat"),
		kong.Description("Terminal chat with the safety demo agent."))
	if err := run(); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel)

	ctx := context.Background()
	llm, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	var guards []core.Plugin
	switch cli.Plugin {
	case "llm_judge":
		guards = append(guards, plugins.NewLLMAsAJudge(llm, cfg.JudgeModel))
		fmt.Println("Using LLM-as-a-judge plugin.")
	case "model_armor":
		armor, err := plugins.NewModelArmorSafetyFilter(ctx, cfg)
		if err != nil {
			return err
		}
		defer armor.Close()
		guards = append(guards, armor)
		fmt.Println("Using Model Armor plugin.")
	default:
		fmt.Println("No plugin activated.")
	}

	runner := core.NewRunner("safetychat", safety.New(cfg, llm), guards...)
	sessionID := uuid.NewString()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s]: ", userID)
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" {
			return nil
		}

		response, _, err := runner.RunText(ctx, userID, sessionID, input)
		if err != nil {
			return err
		}
		fmt.Printf("[agent]: %s\n", response)
	}
}
