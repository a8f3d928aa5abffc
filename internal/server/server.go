// Package server exposes the engine over HTTP: upload, report, filter
// toggles and a websocket stream of analysis activity.
package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nyanyapushkina/log-analysis-bot/internal/engine"
	"github.com/nyanyapushkina/log-analysis-bot/internal/hub"
	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Server holds the Gin engine and its dependencies.
type Server struct {
	router *gin.Engine
	core   *engine.Engine
	events *hub.Hub
	port   string
}

// New creates the HTTP API server.
func New(core *engine.Engine, events *hub.Hub, port string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		core:   core,
		events: events,
		port:   port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/sessions/:id")
	api.POST("/upload", s.handleUpload)
	api.GET("/report", s.handleReport)
	api.GET("/filters", s.handleListFilters)
	api.POST("/filters/:category/toggle", s.handleToggleFilter)
	api.DELETE("", s.handleReset)

	s.router.GET("/ws", s.handleWebSocket)
}

// Start runs the server. Blocks until the listener fails or is closed.
func (s *Server) Start() error {
	return s.router.Run(":" + s.port)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"sessions":       s.core.Store().Count(),
		"dropped_events": s.events.Dropped(),
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}

	name := c.Query("name")
	encoding := c.Query("encoding")

	if err := s.core.Upload(c.Param("id"), name, raw, encoding); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "uploaded", "bytes": len(raw)})
}

func (s *Server) handleReport(c *gin.Context) {
	rep, err := s.core.Analyze(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"filters": s.core.ListFilters(c.Param("id"))})
}

func (s *Server) handleToggleFilter(c *gin.Context) {
	cat := model.Category(c.Param("category"))
	enabled, err := s.core.ToggleFilter(c.Param("id"), cat)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "enabled": enabled})
}

func (s *Server) handleReset(c *gin.Context) {
	s.core.ResetSession(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrNoUploadedFile):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidCategory):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, engine.ErrUnsupportedEncoding):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
