package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type echoInput struct {
	Message string `json:"message" jsonschema_description:"Text to echo back" jsonschema:"required"`
	Times   int    `json:"times,omitempty"`
}

func TestNewToolSignatures(t *testing.T) {
	_, err := NewTool("echo", "Echoes.", func(ctx context.Context, in echoInput) (map[string]any, error) {
		return nil, nil
	})
	assert.NoError(t, err)

	_, err = NewTool("echo", "Echoes.", func(ctx context.Context, s State, in echoInput) (map[string]any, error) {
		return nil, nil
	})
	assert.NoError(t, err)

	_, err = NewTool("bad", "Not a function.", 42)
	assert.Error(t, err)

	_, err = NewTool("bad", "Missing context.", func(in echoInput) (map[string]any, error) {
		return nil, nil
	})
	assert.Error(t, err)

	_, err = NewTool("bad", "Missing error return.", func(ctx context.Context, in echoInput) map[string]any {
		return nil
	})
	assert.Error(t, err)

	_, err = NewTool("bad", "Non-struct input.", func(ctx context.Context, in string) (map[string]any, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestToolDeclaration(t *testing.T) {
	tool := MustTool("echo", "Echoes the message.", func(ctx context.Context, in echoInput) (map[string]any, error) {
		return map[string]any{"echo": in.Message}, nil
	})

	decl := tool.Declaration()
	assert.Equal(t, "echo", decl.Name)
	assert.Equal(t, "Echoes the message.", decl.Description)
	require.NotNil(t, decl.Parameters)
	assert.Equal(t, genai.TypeObject, decl.Parameters.Type)

	msg, ok := decl.Parameters.Properties["message"]
	require.True(t, ok)
	assert.Equal(t, genai.TypeString, msg.Type)
	assert.Equal(t, "Text to echo back", msg.Description)
	assert.Contains(t, decl.Parameters.Required, "message")

	times, ok := decl.Parameters.Properties["times"]
	require.True(t, ok)
	assert.Equal(t, genai.TypeInteger, times.Type)
}

func TestToolCall(t *testing.T) {
	tool := MustTool("echo", "Echoes.", func(ctx context.Context, in echoInput) (map[string]any, error) {
		return map[string]any{"echo": in.Message, "times": in.Times}, nil
	})

	result, err := tool.Call(context.Background(), nil, map[string]any{"message": "hi", "times": 2})
	require.NoError(t, err)
	assert.Equal(t, "hi", result["echo"])
	assert.Equal(t, 2, result["times"])
}

func TestToolCallInvalidArgs(t *testing.T) {
	tool := MustTool("echo", "Echoes.", func(ctx context.Context, in echoInput) (map[string]any, error) {
		return map[string]any{"echo": in.Message}, nil
	})

	result, err := tool.Call(context.Background(), nil, map[string]any{"times": "not a number"})
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
	assert.Contains(t, result["error"], "invalid arguments")
}

func TestToolCallHandlerError(t *testing.T) {
	boom := errors.New("backend unavailable")
	tool := MustTool("fragile", "Fails.", func(ctx context.Context, in echoInput) (map[string]any, error) {
		return nil, boom
	})

	// By default, handler errors flow back to the model as a status dict.
	result, err := tool.Call(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "error", result["status"])
	assert.Equal(t, "backend unavailable", result["error"])

	// Marked tools abort the run instead.
	tool.PropagateErrors()
	result, err = tool.Call(context.Background(), nil, nil)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "tool fragile")
}

func TestToolCallStateAware(t *testing.T) {
	tool := MustTool("stash", "Stashes.", func(ctx context.Context, s State, in echoInput) (map[string]any, error) {
		s.Set("last_message", in.Message)
		return map[string]any{"status": "success"}, nil
	})

	state := NewState()
	result, err := tool.Call(context.Background(), state, map[string]any{"message": "stored"})
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
	assert.Equal(t, "stored", state.GetString("last_message"))
}

func TestToolCallNilStateForStateAware(t *testing.T) {
	tool := MustTool("stash", "Stashes.", func(ctx context.Context, s State, in echoInput) (map[string]any, error) {
		s.Set("k", "v")
		return map[string]any{"status": "success"}, nil
	})

	result, err := tool.Call(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "success", result["status"])
}

func TestToResultMap(t *testing.T) {
	t.Run("map passthrough", func(t *testing.T) {
		m := map[string]any{"a": 1}
		assert.Equal(t, m, toResultMap(m))
	})

	t.Run("string wrap", func(t *testing.T) {
		assert.Equal(t, map[string]any{"result": "done"}, toResultMap("done"))
	})

	t.Run("struct flatten", func(t *testing.T) {
		type out struct {
			Total float64 `json:"total"`
		}
		m := toResultMap(out{Total: 12.5})
		assert.Equal(t, 12.5, m["total"])
	})

	t.Run("slice wrap", func(t *testing.T) {
		m := toResultMap([]string{"a", "b"})
		assert.Equal(t, []any{"a", "b"}, m["result"])
	})
}
