// Package api exposes the agency board over HTTP: a small public surface
// (board, profile pages, submissions) and a JWT-gated admin surface covering
// profiles, calendars, alert rules, and notifications.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/altamoda/agencyboard/internal/config"
	"github.com/altamoda/agencyboard/pkg/core/scheduling"
	"github.com/altamoda/agencyboard/pkg/core/services"
	"github.com/altamoda/agencyboard/pkg/db"
)

// Server wires the HTTP handlers to the store, delivery clients, and config
type Server struct {
	cfg    *config.Config
	store  db.Store
	email  services.EmailSender // Nil when gmail is disabled
	slack  services.SlackSender
	logger *zap.Logger
}

// NewServer creates an HTTP server over the given store and clients
func NewServer(cfg *config.Config, store db.Store, email services.EmailSender, slack services.SlackSender, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		store:  store,
		email:  email,
		slack:  slack,
		logger: logger,
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	public := router.Group("/api")
	{
		public.GET("/board", s.getBoard)
		public.GET("/models/:id", s.getPublicProfile)
		public.POST("/submissions", s.createSubmission)
		public.POST("/admin/login", s.login)
	}

	admin := router.Group("/api/admin")
	admin.Use(s.requireAuth())
	{
		admin.GET("/models", s.listProfiles)
		admin.POST("/models", s.createProfile)
		admin.GET("/models/:id", s.getProfile)
		admin.PUT("/models/:id", s.updateProfile)
		admin.DELETE("/models/:id", s.deleteProfile)
		admin.GET("/models/:id/calendar.ics", s.exportCalendar)

		admin.GET("/models/:id/events", s.listEvents)
		admin.POST("/events", s.createEvent)
		admin.PATCH("/events/:id", s.updateEvent)
		admin.DELETE("/events/:id", s.deleteEvent)
		admin.GET("/calendar/conflicts", s.checkConflicts)

		admin.GET("/alert-rules", s.listRules)
		admin.POST("/alert-rules", s.createRule)
		admin.PATCH("/alert-rules/:id", s.updateRule)
		admin.DELETE("/alert-rules/:id", s.deleteRule)
		admin.POST("/alerts/evaluate", s.evaluateAlerts)

		admin.GET("/notifications", s.listNotifications)
		admin.POST("/notifications/:id/read", s.markNotificationRead)
	}

	return router
}

// Run starts the HTTP server on the configured address
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.cfg.ListenAddr))
	return s.Router().Run(s.cfg.ListenAddr)
}

// respondError maps service errors onto HTTP statuses: validation failures
// are the caller's fault, missing records are 404, everything else is a 500
func (s *Server) respondError(c *gin.Context, err error) {
	var invalid *scheduling.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		s.logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
