// Package server exposes the agent apps over HTTP: one run endpoint per
// registered app plus the realtime websocket relay.
package server

import (
	"net/http"
	"sort"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"cloudsuite/agent-apps/config"
	"cloudsuite/agent-apps/core"
	"cloudsuite/agent-apps/realtime"
)

type RunRequest struct {
	Message string `json:"message" binding:"required"`
}

type RunResponse struct {
	Response    string `json:"response"`
	SessionID   string `json:"session_id"`
	TotalTokens int32  `json:"total_tokens"`
}

// Server routes requests to the registered agent runners.
type Server struct {
	cfg     *config.Config
	runners map[string]*core.Runner
	live    *realtime.Handler
}

func New(cfg *config.Config, runners map[string]*core.Runner, live *realtime.Handler) *Server {
	return &Server{cfg: cfg, runners: runners, live: live}
}

// Router builds the gin engine with permissive CORS and the session header
// allowed, matching how the browser clients talk to the apps.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-User-ID", "X-Session-ID")
	r.Use(cors.New(corsConfig))

	r.GET("/agents", s.listAgents)
	r.POST("/agents/:name/run", s.runAgent)
	if s.live != nil {
		r.GET("/ws/:user_id", s.liveSession)
	}
	return r
}

func (s *Server) Run() error {
	return s.Router().Run(s.cfg.ListenAddr)
}

func (s *Server) listAgents(c *gin.Context) {
	names := make([]string, 0, len(s.runners))
	for name := range s.runners {
		names = append(names, name)
	}
	sort.Strings(names)
	c.JSON(http.StatusOK, gin.H{"agents": names})
}

func (s *Server) runAgent(c *gin.Context) {
	runner, ok := s.runners[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown agent"})
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		userID = "user"
	}
	sessionID := c.GetHeader("X-Session-ID")

	text, session, err := runner.RunText(c.Request.Context(), userID, sessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, RunResponse{
		Response:    text,
		SessionID:   session.ID,
		TotalTokens: session.Usage.TotalTokenCount,
	})
}

func (s *Server) liveSession(c *gin.Context) {
	s.live.ServeWS(c.Writer, c.Request, c.Param("user_id"))
}
