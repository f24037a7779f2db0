package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/altamoda/agencyboard/pkg/core/services"
)

type createRuleRequest struct {
	Name            string   `json:"name" binding:"required"`
	Enabled         bool     `json:"enabled"`
	EventType       string   `json:"eventType" binding:"required"`
	Timing          string   `json:"timing" binding:"required"`
	Value           int      `json:"value"`
	Unit            string   `json:"unit"`
	Channels        []string `json:"channels" binding:"required"`
	EmailRecipients string   `json:"emailRecipients"`
	SlackWebhookURL string   `json:"slackWebhookUrl"`
}

type updateRuleRequest struct {
	Name            *string   `json:"name"`
	Enabled         *bool     `json:"enabled"`
	EventType       *string   `json:"eventType"`
	Timing          *string   `json:"timing"`
	Value           *int      `json:"value"`
	Unit            *string   `json:"unit"`
	Channels        *[]string `json:"channels"`
	EmailRecipients *string   `json:"emailRecipients"`
	SlackWebhookURL *string   `json:"slackWebhookUrl"`
}

func (s *Server) listRules(c *gin.Context) {
	rules, err := s.store.GetRules(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (s *Server) createRule(c *gin.Context) {
	var req createRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := services.CreateRule(c.Request.Context(), s.store, s.logger, services.CreateRuleInput{
		Name:            req.Name,
		Enabled:         req.Enabled,
		EventType:       req.EventType,
		Timing:          req.Timing,
		Value:           req.Value,
		Unit:            req.Unit,
		Channels:        req.Channels,
		EmailRecipients: req.EmailRecipients,
		SlackWebhookURL: req.SlackWebhookURL,
		CreatedBy:       c.GetString(adminIDKey),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (s *Server) updateRule(c *gin.Context) {
	var req updateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := services.UpdateRule(c.Request.Context(), s.store, s.logger, c.Param("id"), services.UpdateRuleInput{
		Name:            req.Name,
		Enabled:         req.Enabled,
		EventType:       req.EventType,
		Timing:          req.Timing,
		Value:           req.Value,
		Unit:            req.Unit,
		Channels:        req.Channels,
		EmailRecipients: req.EmailRecipients,
		SlackWebhookURL: req.SlackWebhookURL,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (s *Server) deleteRule(c *gin.Context) {
	if err := services.DeleteRule(c.Request.Context(), s.store, s.logger, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// evaluateAlerts runs one evaluation pass immediately. With dispatch=true the
// fired alerts are also recorded and delivered, same as the scheduled run.
func (s *Server) evaluateAlerts(c *gin.Context) {
	ctx := c.Request.Context()

	evaluation, err := services.EvaluateAlerts(ctx, s.store, s.logger, time.Now())
	if err != nil {
		s.respondError(c, err)
		return
	}

	if c.Query("dispatch") != "true" {
		c.JSON(http.StatusOK, evaluation)
		return
	}

	dispatched, err := services.DispatchAlerts(ctx, s.store, s.email, s.slack, s.logger, evaluation.Pairs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evaluation": evaluation, "dispatch": dispatched})
}
