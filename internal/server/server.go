// Package server binds the panel's pipeline operations to their HTTP routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/markuskoenig271/asiaspanel/pkg/config"
	"github.com/markuskoenig271/asiaspanel/pkg/storage"
	"github.com/markuskoenig271/asiaspanel/pkg/synthesizer"
	"github.com/markuskoenig271/asiaspanel/pkg/translator"
)

// Deps is everything the routes need, injected so tests can swap any piece.
type Deps struct {
	Translator translator.Translator
	Speech     *synthesizer.Pipeline
	Store      storage.Store
	Config     config.Store

	// Static, when non-nil, is mounted at /storage so locally stored audio
	// URLs resolve. Left nil with the blob backend, whose URLs are absolute.
	Static http.FileSystem

	// Password enables the shared-secret login gate on /api when non-empty.
	Password string
}

type Server struct {
	engine    *gin.Engine
	startedAt time.Time
	deps      Deps
}

func New(deps Deps) *Server {
	server := &Server{
		engine:    gin.New(),
		startedAt: time.Now(),
		deps:      deps,
	}

	server.engine.Use(gin.Recovery())
	// The frontend bundle is usually served from a different origin (Static
	// Web App), so stay permissive like the original deployment.
	server.engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	server.engine.GET("/health", server.handleHealth)

	api := server.engine.Group("/api")
	if deps.Password != "" {
		gate := newAuthGate(deps.Password)
		server.engine.POST("/api/login", gate.handleLogin)
		api.Use(gate.require)
	}
	api.POST("/translate", server.handleTranslate)
	api.POST("/tts", server.handleTTS)
	api.GET("/config", server.handleGetConfig)
	api.POST("/config", server.handleSetConfig)

	if deps.Static != nil {
		server.engine.StaticFS("/storage", deps.Static)
	}

	return server
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("panel backend listening")
	return s.engine.Run(addr)
}
