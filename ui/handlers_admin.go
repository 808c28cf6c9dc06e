package ui

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"auditkit/domain/checklist"
	"auditkit/domain/scoring"
	"auditkit/ports"
)

func (s *Server) handleAddCategory(c *gin.Context) {
	var draft checklist.CategoryDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category payload"})
		return
	}

	created, err := s.audit.AddCategory(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	var updated checklist.Category
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category payload"})
		return
	}
	updated.ID = c.Param("id")

	if err := s.audit.UpdateCategory(c.Request.Context(), updated); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.audit.Collection().FindCategory(updated.ID))
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	if err := s.audit.DeleteCategory(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleAddItem(c *gin.Context) {
	var draft checklist.Item
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item payload"})
		return
	}

	created, err := s.audit.AddItem(c.Request.Context(), c.Param("id"), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	err := s.audit.DeleteItem(c.Request.Context(), c.Param("id"), c.Param("itemID"), confirmed(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// handleImport replaces the whole collection from an uploaded JSON
// document. Validation happens before confirmation is even checked, and a
// rejected document leaves prior state untouched.
func (s *Server) handleImport(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read import payload"})
		return
	}

	if err := s.audit.Import(c.Request.Context(), payload, confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "imported", "categories": len(s.audit.Collection())})
}

// handleExport downloads the dehydrated collection as a JSON backup.
func (s *Server) handleExport(c *gin.Context) {
	payload, err := s.audit.Export()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="audit-checklist-backup.json"`)
	c.Data(http.StatusOK, "application/json", payload)
}

// handleExportReport downloads the XLSX audit report.
func (s *Server) handleExportReport(c *gin.Context) {
	cats := s.audit.Collection()
	report := ports.AuditReport{
		Summary:    s.audit.Summary(),
		Categories: cats,
		Findings:   scoring.KeyFindings(cats),
		Actions:    scoring.CorrectiveActions(cats),
	}

	payload, err := s.reports.WriteReport(report)
	if err != nil {
		respondError(c, fmt.Errorf("report generation failed: %w", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="audit-report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

type syncRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Path  string `json:"path"`
	Token string `json:"token"`
}

func (r syncRequest) location() (ports.RemoteLocation, error) {
	if r.Owner == "" || r.Repo == "" || r.Path == "" || r.Token == "" {
		return ports.RemoteLocation{}, fmt.Errorf("owner, repo, path and token are all required")
	}
	return ports.RemoteLocation{Owner: r.Owner, Repo: r.Repo, Path: r.Path, Token: r.Token}, nil
}

func (s *Server) handleSyncPush(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sync payload"})
		return
	}
	loc, err := req.location()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sync.Push(c.Request.Context(), loc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pushed"})
}

func (s *Server) handleSyncPull(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sync payload"})
		return
	}
	loc, err := req.location()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.sync.Pull(c.Request.Context(), loc, confirmed(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "pulled", "categories": len(s.audit.Collection())})
}
