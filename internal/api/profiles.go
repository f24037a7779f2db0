package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/altamoda/agencyboard/pkg/core/model"
	"github.com/altamoda/agencyboard/pkg/core/services"
	"github.com/altamoda/agencyboard/pkg/db"
)

type profileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Division  string `json:"division"`
	Status    string `json:"status"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Instagram string `json:"instagram"`
	HeightCM  int    `json:"heightCm"`
	Bust      string `json:"bust"`
	Waist     string `json:"waist"`
	Hips      string `json:"hips"`
	ShoeSize  string `json:"shoeSize"`
	HairColor string `json:"hairColor"`
	EyeColor  string `json:"eyeColor"`
	Notes     string `json:"notes"`
}

func (r profileRequest) toInput() services.ProfileInput {
	return services.ProfileInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Division:  r.Division,
		Status:    r.Status,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Instagram: r.Instagram,
		HeightCM:  r.HeightCM,
		Bust:      r.Bust,
		Waist:     r.Waist,
		Hips:      r.Hips,
		ShoeSize:  r.ShoeSize,
		HairColor: r.HairColor,
		EyeColor:  r.EyeColor,
		Notes:     r.Notes,
	}
}

// getBoard returns active profiles grouped by division, for the public site
func (s *Server) getBoard(c *gin.Context) {
	divisions, err := services.ListBoard(c.Request.Context(), s.store, s.logger)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"divisions": divisions})
}

// getPublicProfile serves a single profile page. Only active profiles are
// visible publicly; anything else reads as not found.
func (s *Server) getPublicProfile(c *gin.Context) {
	profile, err := s.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		s.respondError(c, err)
		return
	}
	if profile.Status != model.ProfileActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

type submissionRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Instagram string `json:"instagram"`
	HeightCM  int    `json:"heightCm"`
	Notes     string `json:"notes"`
}

func (s *Server) createSubmission(c *gin.Context) {
	var req submissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.SubmitApplication(c.Request.Context(), s.store, s.logger, services.SubmissionInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Location:  req.Location,
		Instagram: req.Instagram,
		HeightCM:  req.HeightCM,
		Notes:     req.Notes,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": profile.ID})
}

func (s *Server) listProfiles(c *gin.Context) {
	profiles, err := s.store.GetProfiles(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (s *Server) getProfile(c *gin.Context) {
	profile, err := s.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) createProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.CreateProfile(c.Request.Context(), s.store, s.logger, req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := services.UpdateProfile(c.Request.Context(), s.store, s.logger, c.Param("id"), req.toInput())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) deleteProfile(c *gin.Context) {
	if err := services.DeleteProfile(c.Request.Context(), s.store, s.logger, c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportCalendar streams a model's calendar as an iCalendar document
func (s *Server) exportCalendar(c *gin.Context) {
	serialized, err := services.ExportCalendar(c.Request.Context(), s.store, s.logger, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="calendar.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(serialized))
}
