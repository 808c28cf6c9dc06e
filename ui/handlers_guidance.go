package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auditkit/domain/guidance"
)

func (s *Server) handleGuidanceList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.audit.Guidance()})
}

// handleGuidanceDetail returns one entry plus the checklist items whose
// clause references it. The lookup is case-insensitive.
func (s *Server) handleGuidanceDetail(c *gin.Context) {
	entry, linked, err := s.audit.GuidanceEntry(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entry, "linkedItems": linked})
}

func (s *Server) handleSaveGuidance(c *gin.Context) {
	var entry guidance.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guidance payload"})
		return
	}

	if err := s.audit.SaveGuidanceEntry(c.Request.Context(), entry); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) handleDeleteGuidance(c *gin.Context) {
	err := s.audit.DeleteGuidanceEntry(c.Request.Context(), c.Param("id"), confirmed(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
