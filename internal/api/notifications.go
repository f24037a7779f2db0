package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.store.GetNotifications(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// markNotificationRead records that the calling admin has seen the
// notification. Marking twice is a no-op.
func (s *Server) markNotificationRead(c *gin.Context) {
	err := s.store.MarkNotificationRead(c.Request.Context(), c.Param("id"), c.GetString(adminIDKey))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
