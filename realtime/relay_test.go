package realtime

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestTranslateServerMessageEmpty(t *testing.T) {
	assert.Nil(t, translateServerMessage("agent", &genai.LiveServerMessage{}))
	assert.Nil(t, translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{},
	}))
	// A model turn with no usable parts carries nothing for the client.
	assert.Nil(t, translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{Parts: []*genai.Part{nil, {}}},
		},
	}))
}

func TestTranslateServerMessageText(t *testing.T) {
	env := translateServerMessage("math_tutor", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{Parts: []*genai.Part{{Text: "What do you notice about the equation?"}}},
		},
	})
	require.NotNil(t, env)
	assert.Equal(t, "math_tutor", env.Author)
	require.Len(t, env.Parts, 1)
	assert.Equal(t, "text", env.Parts[0].Type)
	assert.Equal(t, "What do you notice about the equation?", env.Parts[0].Data)
	assert.False(t, env.TurnComplete)
}

func TestTranslateServerMessageAudio(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	env := translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{MIMEType: "audio/pcm;rate=24000", Data: pcm},
			}}},
		},
	})
	require.NotNil(t, env)
	require.Len(t, env.Parts, 1)
	assert.Equal(t, "audio/pcm", env.Parts[0].Type)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pcm), env.Parts[0].Data)
}

func TestTranslateServerMessageFunctionCall(t *testing.T) {
	env := translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			ModelTurn: &genai.Content{Parts: []*genai.Part{
				{FunctionCall: &genai.FunctionCall{Name: "lookup"}},
				{FunctionResponse: &genai.FunctionResponse{Name: "lookup", Response: map[string]any{"ok": true}}},
			}},
		},
	})
	require.NotNil(t, env)
	require.Len(t, env.Parts, 2)

	call := env.Parts[0].Data.(map[string]any)
	assert.Equal(t, "lookup", call["name"])
	// Nil args are normalized to an empty object for the client.
	assert.Equal(t, map[string]any{}, call["args"])

	resp := env.Parts[1].Data.(map[string]any)
	assert.Equal(t, "function_response", env.Parts[1].Type)
	assert.Equal(t, map[string]any{"ok": true}, resp["response"])
}

func TestTranslateServerMessageTranscriptions(t *testing.T) {
	env := translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{
			InputTranscription:  &genai.Transcription{Text: "two plus two", Finished: true},
			OutputTranscription: &genai.Transcription{Text: "Let's work it", Finished: false},
		},
	})
	require.NotNil(t, env)
	require.NotNil(t, env.InputTranscription)
	assert.Equal(t, "two plus two", env.InputTranscription.Text)
	assert.True(t, env.InputTranscription.IsFinal)

	require.NotNil(t, env.OutputTranscription)
	assert.False(t, env.OutputTranscription.IsFinal)
	assert.True(t, env.IsPartial)

	// The output transcription is also surfaced as a text part.
	require.Len(t, env.Parts, 1)
	assert.Equal(t, "text", env.Parts[0].Type)
	assert.Equal(t, "Let's work it", env.Parts[0].Data)
}

func TestTranslateServerMessageTurnBoundaries(t *testing.T) {
	env := translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{TurnComplete: true},
	})
	require.NotNil(t, env)
	assert.True(t, env.TurnComplete)
	assert.Empty(t, env.Parts)

	env = translateServerMessage("agent", &genai.LiveServerMessage{
		ServerContent: &genai.LiveServerContent{Interrupted: true},
	})
	require.NotNil(t, env)
	assert.True(t, env.Interrupted)
}
