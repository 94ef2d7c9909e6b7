package core

import (
	"context"
	"log/slog"

	"google.golang.org/genai"
)

// Runner drives one agent tree over a session store, threading the plugin
// chain through every turn. It is the in-process equivalent of a hosted
// agent runtime: run the agent, check state, return the final response.
type Runner struct {
	AppName  string
	Agent    Agent
	Sessions *SessionStore
	Plugins  []Plugin
}

func NewRunner(appName string, agent Agent, plugins ...Plugin) *Runner {
	return &Runner{
		AppName:  appName,
		Agent:    agent,
		Sessions: NewSessionStore(),
		Plugins:  plugins,
	}
}

// RunText executes one conversation turn with a plain-text user message and
// returns the final response text together with the session used.
func (r *Runner) RunText(ctx context.Context, userID, sessionID, message string) (string, *Session, error) {
	session := r.Sessions.GetOrCreate(userID, sessionID)
	out, err := r.Run(ctx, session, TextContent(genai.RoleUser, message))
	if err != nil {
		return "", session, err
	}
	return contentText(out), session, nil
}

// Run executes one conversation turn. The user content passes through the
// plugin chain first; a plugin may rewrite it (safety substitution) or flag
// the session so BeforeRun short-circuits the turn entirely.
func (r *Runner) Run(ctx context.Context, session *Session, userContent *genai.Content) (*genai.Content, error) {
	inv := NewInvocation(session, userContent, r.Plugins)

	msg, err := onUserMessage(ctx, inv, userContent)
	if err != nil {
		return nil, err
	}
	inv.UserContent = msg

	if early, err := beforeRun(ctx, inv); err != nil {
		return nil, err
	} else if early != nil {
		session.History = append(session.History, msg, early)
		return early, nil
	}

	out, err := r.Agent.Run(ctx, inv)
	if err != nil {
		return nil, err
	}

	session.History = append(session.History, msg)
	if out != nil {
		session.History = append(session.History, out)
	}
	slog.Debug("turn complete",
		"app", r.AppName,
		"session", session.ID,
		"total_tokens", session.Usage.TotalTokenCount,
	)
	return out, nil
}
