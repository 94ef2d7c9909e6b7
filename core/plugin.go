package core

import (
	"context"

	"google.golang.org/genai"
)

// Plugin intercepts the runner at well-defined points. Implement the
// optional interfaces below for the callbacks a plugin cares about.
//
// Plugin errors propagate as ordinary errors: there is no retry, backoff or
// special handling anywhere in the chain.
type Plugin interface {
	PluginName() string
}

// UserMessagePlugin inspects the user message before the run starts. A
// non-nil return replaces the message.
type UserMessagePlugin interface {
	Plugin
	OnUserMessage(ctx context.Context, inv *Invocation, msg *genai.Content) (*genai.Content, error)
}

// RunPlugin can short-circuit a run before any model call; a non-nil return
// becomes the turn's final content.
type RunPlugin interface {
	Plugin
	BeforeRun(ctx context.Context, inv *Invocation) (*genai.Content, error)
}

// ToolPlugin intercepts tool dispatch. A non-nil map from BeforeTool skips
// the tool and is used as its result; a non-nil map from AfterTool replaces
// the tool's result.
type ToolPlugin interface {
	Plugin
	BeforeTool(ctx context.Context, inv *Invocation, tool *Tool, args map[string]any) (map[string]any, error)
	AfterTool(ctx context.Context, inv *Invocation, tool *Tool, args map[string]any, result map[string]any) (map[string]any, error)
}

// ModelPlugin inspects raw model responses; a non-nil return replaces the
// model's content for this turn.
type ModelPlugin interface {
	Plugin
	AfterModel(ctx context.Context, inv *Invocation, resp *genai.GenerateContentResponse) (*genai.Content, error)
}

func onUserMessage(ctx context.Context, inv *Invocation, msg *genai.Content) (*genai.Content, error) {
	for _, p := range inv.plugins {
		hook, ok := p.(UserMessagePlugin)
		if !ok {
			continue
		}
		replaced, err := hook.OnUserMessage(ctx, inv, msg)
		if err != nil {
			return nil, err
		}
		if replaced != nil {
			msg = replaced
		}
	}
	return msg, nil
}

func beforeRun(ctx context.Context, inv *Invocation) (*genai.Content, error) {
	for _, p := range inv.plugins {
		hook, ok := p.(RunPlugin)
		if !ok {
			continue
		}
		content, err := hook.BeforeRun(ctx, inv)
		if err != nil {
			return nil, err
		}
		if content != nil {
			return content, nil
		}
	}
	return nil, nil
}

func beforeTool(ctx context.Context, inv *Invocation, tool *Tool, args map[string]any) (map[string]any, error) {
	for _, p := range inv.plugins {
		hook, ok := p.(ToolPlugin)
		if !ok {
			continue
		}
		result, err := hook.BeforeTool(ctx, inv, tool, args)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

func afterTool(ctx context.Context, inv *Invocation, tool *Tool, args map[string]any, result map[string]any) (map[string]any, error) {
	for _, p := range inv.plugins {
		hook, ok := p.(ToolPlugin)
		if !ok {
			continue
		}
		replaced, err := hook.AfterTool(ctx, inv, tool, args, result)
		if err != nil {
			return nil, err
		}
		if replaced != nil {
			return replaced, nil
		}
	}
	return nil, nil
}

func afterModel(ctx context.Context, inv *Invocation, resp *genai.GenerateContentResponse) (*genai.Content, error) {
	for _, p := range inv.plugins {
		hook, ok := p.(ModelPlugin)
		if !ok {
			continue
		}
		replaced, err := hook.AfterModel(ctx, inv, resp)
		if err != nil {
			return nil, err
		}
		if replaced != nil {
			return replaced, nil
		}
	}
	return nil, nil
}
