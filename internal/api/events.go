package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altamoda/agencyboard/pkg/core/services"
)

type createEventRequest struct {
	ModelID   string `json:"modelId" binding:"required"`
	EventType string `json:"eventType" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`

	Title      string `json:"title"`
	ClientName string `json:"clientName"`
	Location   string `json:"location"`
	CallTime   string `json:"callTime"`
	Duration   string `json:"duration"`
	Notes      string `json:"notes"`

	AvailabilityStatus string `json:"availabilityStatus"`
	OptionExpiry       string `json:"optionExpiry"`
	OptionPriority     int    `json:"optionPriority"`
	OptionClient       string `json:"optionClient"`
	Recurrence         string `json:"recurrence"`
}

type updateEventRequest struct {
	EventType *string `json:"eventType"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`

	Title      *string `json:"title"`
	ClientName *string `json:"clientName"`
	Location   *string `json:"location"`
	CallTime   *string `json:"callTime"`
	Duration   *string `json:"duration"`
	Notes      *string `json:"notes"`

	AvailabilityStatus *string `json:"availabilityStatus"`
	OptionExpiry       *string `json:"optionExpiry"`
	OptionPriority     *int    `json:"optionPriority"`
	OptionClient       *string `json:"optionClient"`
	Recurrence         *string `json:"recurrence"`
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.store.GetEventsForModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// createEvent stores the event and reports any overlapping bookings alongside
// it. Conflicts never block the write.
func (s *Server) createEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.CreateEvent(c.Request.Context(), s.store, s.logger, services.CreateEventInput{
		ModelID:            req.ModelID,
		EventType:          req.EventType,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Title:              req.Title,
		ClientName:         req.ClientName,
		Location:           req.Location,
		CallTime:           req.CallTime,
		Duration:           req.Duration,
		Notes:              req.Notes,
		AvailabilityStatus: req.AvailabilityStatus,
		OptionExpiry:       req.OptionExpiry,
		OptionPriority:     req.OptionPriority,
		OptionClient:       req.OptionClient,
		Recurrence:         req.Recurrence,
		CreatedBy:          c.GetString(adminIDKey),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) updateEvent(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := services.UpdateEvent(c.Request.Context(), s.store, s.logger, c.Param("id"), services.UpdateEventInput{
		EventType:          req.EventType,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Title:              req.Title,
		ClientName:         req.ClientName,
		Location:           req.Location,
		CallTime:           req.CallTime,
		Duration:           req.Duration,
		Notes:              req.Notes,
		AvailabilityStatus: req.AvailabilityStatus,
		OptionExpiry:       req.OptionExpiry,
		OptionPriority:     req.OptionPriority,
		OptionClient:       req.OptionClient,
		Recurrence:         req.Recurrence,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := services.DeleteEvent(c.Request.Context(), s.store, s.logger, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// checkConflicts answers "is this model free?" without writing anything
func (s *Server) checkConflicts(c *gin.Context) {
	conflicts, err := services.CheckConflicts(c.Request.Context(), s.store, s.logger, services.CheckConflictsInput{
		ModelID:        c.Query("modelId"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
		StartTime:      c.Query("startTime"),
		EndTime:        c.Query("endTime"),
		ExcludeEventID: c.Query("excludeEventId"),
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}
