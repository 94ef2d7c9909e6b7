// Package realtime relays a browser websocket to a Gemini Live session:
// client audio/text/image frames go up, structured agent events come down.
package realtime

import (
	"encoding/base64"
	"strings"

	"google.golang.org/genai"
)

// ServerEnvelope is the JSON frame sent to the client for every agent
// event.
type ServerEnvelope struct {
	Author              string         `json:"author"`
	IsPartial           bool           `json:"is_partial"`
	TurnComplete        bool           `json:"turn_complete"`
	Interrupted         bool           `json:"interrupted"`
	Parts               []EnvelopePart `json:"parts"`
	InputTranscription  *Transcription `json:"input_transcription"`
	OutputTranscription *Transcription `json:"output_transcription"`
}

// EnvelopePart is one piece of agent output: text, base64 PCM audio, a
// function call or a function response.
type EnvelopePart struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Transcription struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

// ClientMessage is the JSON frame received from the client. Audio and image
// data is base64 encoded.
type ClientMessage struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// hasPayload reports whether the envelope carries anything worth sending.
func (e *ServerEnvelope) hasPayload() bool {
	return len(e.Parts) > 0 || e.TurnComplete || e.Interrupted ||
		e.InputTranscription != nil || e.OutputTranscription != nil
}

// translateServerMessage converts one Live API server message into the
// client envelope, or nil when the message carries nothing for the client.
func translateServerMessage(author string, msg *genai.LiveServerMessage) *ServerEnvelope {
	content := msg.ServerContent
	if content == nil {
		return nil
	}

	env := &ServerEnvelope{
		Author:       author,
		TurnComplete: content.TurnComplete,
		Interrupted:  content.Interrupted,
		Parts:        []EnvelopePart{},
	}

	if t := content.InputTranscription; t != nil && t.Text != "" {
		env.InputTranscription = &Transcription{Text: t.Text, IsFinal: t.Finished}
	}
	if t := content.OutputTranscription; t != nil && t.Text != "" {
		env.OutputTranscription = &Transcription{Text: t.Text, IsFinal: t.Finished}
		env.Parts = append(env.Parts, EnvelopePart{Type: "text", Data: t.Text})
		env.IsPartial = !t.Finished
	}

	if turn := content.ModelTurn; turn != nil {
		for _, part := range turn.Parts {
			switch {
			case part == nil:
			case part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "audio/pcm"):
				env.Parts = append(env.Parts, EnvelopePart{
					Type: "audio/pcm",
					Data: base64.StdEncoding.EncodeToString(part.InlineData.Data),
				})
			case part.FunctionCall != nil:
				args := part.FunctionCall.Args
				if args == nil {
					args = map[string]any{}
				}
				env.Parts = append(env.Parts, EnvelopePart{
					Type: "function_call",
					Data: map[string]any{"name": part.FunctionCall.Name, "args": args},
				})
			case part.FunctionResponse != nil:
				response := part.FunctionResponse.Response
				if response == nil {
					response = map[string]any{}
				}
				env.Parts = append(env.Parts, EnvelopePart{
					Type: "function_response",
					Data: map[string]any{"name": part.FunctionResponse.Name, "response": response},
				})
			case part.Text != "":
				env.Parts = append(env.Parts, EnvelopePart{Type: "text", Data: part.Text})
			}
		}
	}

	if !env.hasPayload() {
		return nil
	}
	return env
}
