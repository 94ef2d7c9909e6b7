package realtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"google.golang.org/genai"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
)

// Handler upgrades client connections and relays them to Gemini Live
// sessions. One live session is opened per websocket connection.
type Handler struct {
	cfg      *config.Config
	client   *genai.Client
	upgrader websocket.Upgrader
}

func NewHandler(cfg *config.Config, client *genai.Client) *Handler {
	return &Handler{
		cfg:    cfg,
		client: client,
		upgrader: websocket.Upgrader{
			// The browser client is served from a different origin during
			// development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) liveConfig() *genai.LiveConnectConfig {
	return &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction:  core.TextContent(genai.RoleUser, agentInstruction),
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: h.cfg.AgentVoice},
			},
			LanguageCode: h.cfg.AgentLanguage,
		},
		SessionResumption:        &genai.SessionResumptionConfig{Transparent: true},
		InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
		RealtimeInputConfig: &genai.RealtimeInputConfig{
			AutomaticActivityDetection: &genai.AutomaticActivityDetection{
				StartOfSpeechSensitivity: genai.StartSensitivityLow,
				EndOfSpeechSensitivity:   genai.EndSensitivityHigh,
			},
		},
	}
}

// ServeWS handles one client websocket for its whole lifetime.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "user", userID, "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	session, err := h.client.Live.Connect(ctx, h.cfg.LiveModel, h.liveConfig())
	if err != nil {
		slog.Error("live connect failed", "user", userID, "err", err)
		return
	}
	defer session.Close()

	slog.Info("live session started", "user", userID, "model", h.cfg.LiveModel)

	errc := make(chan error, 2)
	go func() { errc <- h.agentToClient(conn, session) }()
	go func() { errc <- h.clientToAgent(conn, session) }()

	// The first pump to fail (client disconnect included) ends the session.
	err = <-errc
	cancel()
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		slog.Warn("live session ended", "user", userID, "err", err)
	} else {
		slog.Info("client disconnected", "user", userID)
	}
}

// agentToClient forwards live session events to the websocket. It is the
// connection's only writer.
func (h *Handler) agentToClient(conn *websocket.Conn, session *genai.Session) error {
	for {
		msg, err := session.Receive()
		if err != nil {
			return err
		}
		env := translateServerMessage(agentName, msg)
		if env == nil {
			continue
		}
		if err := conn.WriteJSON(env); err != nil {
			return err
		}
	}
}

// clientToAgent forwards client frames into the live session.
func (h *Handler) clientToAgent(conn *websocket.Conn, session *genai.Session) error {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			slog.Warn("bad client frame", "err", err)
			continue
		}

		switch msg.MimeType {
		case "text/plain":
			err = session.SendClientContent(genai.LiveClientContentInput{
				Turns: []*genai.Content{core.TextContent(genai.RoleUser, msg.Data)},
			})
		case "audio/pcm", "image/jpeg":
			var decoded []byte
			decoded, err = base64.StdEncoding.DecodeString(msg.Data)
			if err == nil {
				err = session.SendRealtimeInput(genai.LiveRealtimeInput{
					Media: &genai.Blob{Data: decoded, MIMEType: msg.MimeType},
				})
			}
		default:
			slog.Warn("mime type not supported", "mime_type", msg.MimeType)
			continue
		}
		if err != nil {
			return err
		}
	}
}
