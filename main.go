package main

import (
	"context"
	"log/slog"
	"os"

	"cloudsuite/agent-apps/blogger"
	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
	"cloudsuite/agent-apps/dataengineering"
	"cloudsuite/agent-apps/datascience"
	"cloudsuite/agent-apps/gemini"
	"cloudsuite/agent-apps/logging"
	"cloudsuite/agent-apps/marketing"
	"cloudsuite/agent-apps/medpreauth"
	"cloudsuite/agent-apps/plugins"
	"cloudsuite/agent-apps/realtime"
	"cloudsuite/agent-apps/safety"
	"cloudsuite/agent-apps/server"
	"cloudsuite/agent-apps/trends"
)

func main() {
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

	runners := make(map[string]*core.Runner)

	eltAgent, err := dataengineering.New(ctx, cfg, llm)
	if err != nil {
		return err
	}
	runners["dataengineering"] = core.NewRunner("dataengineering", eltAgent)

	runners["blogger"] = core.NewRunner("blogger", blogger.New(cfg, llm))

	bqmlAgent, err := datascience.New(ctx, cfg, llm)
	if err != nil {
		return err
	}
	runners["datascience"] = core.NewRunner("datascience", bqmlAgent)

	preauthAgent, err := medpreauth.New(ctx, cfg, llm)
	if err != nil {
		return err
	}
	runners["medpreauth"] = core.NewRunner("medpreauth", preauthAgent)

	trendsAgent, err := trends.New(ctx, cfg, llm)
	if err != nil {
		return err
	}
	runners["trends"] = core.NewRunner("trends", trendsAgent)

	runners["marketing"] = core.NewRunner("marketing", marketing.New(cfg, llm))

	judge := plugins.NewLLMAsAJudge(llm, cfg.JudgeModel)
	runners["safety"] = core.NewRunner("safety", safety.New(cfg, llm), judge)

	live := realtime.NewHandler(cfg, llm.Raw())

	slog.Info("agent apps ready", "count", len(runners), "addr", cfg.ListenAddr)
	return server.New(cfg, runners, live).Run()
}
