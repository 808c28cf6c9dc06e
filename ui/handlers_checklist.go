package ui

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"auditkit/domain/scoring"
)

// handleState returns the full hydrated collection with the baseline, the
// one payload the dashboard needs to render everything.
func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": s.audit.Collection(),
		"baseline":   s.audit.Baseline(),
	})
}

// handleScoreSummary returns the weighted overall conformance figures.
func (s *Server) handleScoreSummary(c *gin.Context) {
	c.JSON(http.StatusOK, s.audit.Summary())
}

// handleScoreCategories returns per-category conformance percentages.
func (s *Server) handleScoreCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": scoring.PerCategory(s.audit.Collection())})
}

func (s *Server) handleFindings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"findings": scoring.KeyFindings(s.audit.Collection())})
}

func (s *Server) handleCorrectiveActions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"actions": scoring.CorrectiveActions(s.audit.Collection())})
}

func (s *Server) handleKeyGaps(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"gaps": scoring.KeyGaps(s.audit.Collection())})
}

func (s *Server) handleRoadmap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roadmap": scoring.Roadmap(s.audit.Collection())})
}

func (s *Server) handleWeighting(c *gin.Context) {
	c.JSON(http.StatusOK, scoring.Weighting(s.audit.Collection()))
}

// handleUpdateItem records audit state (status, evidence, metadata) for one
// control. The body is merged over the stored item, so a client sending
// only status and evidence never strips weighting metadata. The path item
// ID wins over whatever the body carries.
func (s *Server) handleUpdateItem(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read item payload"})
		return
	}

	if _, err := s.audit.ApplyItemUpdate(c.Request.Context(), c.Param("id"), c.Param("itemID"), payload); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": s.audit.Collection().FindCategory(c.Param("id"))})
}

// handleResetProgress wipes audit progress for one category.
func (s *Server) handleResetProgress(c *gin.Context) {
	if err := s.audit.ResetCategoryProgress(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": s.audit.Collection().FindCategory(c.Param("id"))})
}

// handleTakeBaseline freezes current conformance as the new baseline.
func (s *Server) handleTakeBaseline(c *gin.Context) {
	baseline, err := s.audit.TakeBaseline(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, baseline)
}
