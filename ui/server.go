// Package ui serves the audit tool's JSON API with gin. Handlers stay
// thin: every read goes through the scoring engine or the audit service,
// every write through a service mutation, and nothing in this package
// touches persisted state directly.
package ui

import (
	goerrors "errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auditkit/app"
	"auditkit/domain/core"
	"auditkit/internal/config"
	"auditkit/internal/errors"
	"auditkit/ports"
)

// Server wires the HTTP surface to the application services.
type Server struct {
	router   *gin.Engine
	audit    *app.AuditService
	sync     *app.SyncService
	reports  ports.ReportWriter
	sessions *sessionStore
}

// NewServer creates the server and registers all routes.
func NewServer(cfg *config.Config, audit *app.AuditService, sync *app.SyncService, reports ports.ReportWriter) *Server {
	gin.SetMode(cfg.Server.GinMode)

	s := &Server{
		router:   gin.New(),
		audit:    audit,
		sync:     sync,
		reports:  reports,
		sessions: newSessionStore(cfg.Admin.Password, cfg.Admin.SessionTTL),
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	// Auditing surface: open, this is a single-operator tool.
	api.POST("/login", s.handleLogin)
	api.GET("/state", s.handleState)
	api.GET("/score/summary", s.handleScoreSummary)
	api.GET("/score/categories", s.handleScoreCategories)
	api.GET("/reports/findings", s.handleFindings)
	api.GET("/reports/actions", s.handleCorrectiveActions)
	api.GET("/reports/gaps", s.handleKeyGaps)
	api.GET("/reports/roadmap", s.handleRoadmap)
	api.GET("/weighting", s.handleWeighting)
	api.GET("/guidance", s.handleGuidanceList)
	api.GET("/guidance/:id", s.handleGuidanceDetail)
	api.PUT("/categories/:id/items/:itemID", s.handleUpdateItem)
	api.POST("/categories/:id/reset", s.handleResetProgress)
	api.POST("/baseline", s.handleTakeBaseline)

	// Taxonomy editing and data management: admin token required.
	admin := api.Group("", s.requireAdmin())
	admin.POST("/logout", s.handleLogout)
	admin.POST("/categories", s.handleAddCategory)
	admin.PUT("/categories/:id", s.handleUpdateCategory)
	admin.DELETE("/categories/:id", s.handleDeleteCategory)
	admin.POST("/categories/:id/items", s.handleAddItem)
	admin.DELETE("/categories/:id/items/:itemID", s.handleDeleteItem)
	admin.POST("/import", s.handleImport)
	admin.GET("/export", s.handleExport)
	admin.GET("/export/report.xlsx", s.handleExportReport)
	admin.POST("/sync/push", s.handleSyncPush)
	admin.POST("/sync/pull", s.handleSyncPull)
	admin.POST("/guidance", s.handleSaveGuidance)
	admin.DELETE("/guidance/:id", s.handleDeleteGuidance)
}

// Run starts serving on the given address.
func (s *Server) Run(addr string) error {
	log.Printf("[API] audit tracker listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// confirmed reports whether the request carries the explicit confirmation
// destructive operations demand.
func confirmed(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

// respondError maps domain and application errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
	case core.IsImportError(err), isValidationError(err):
		status = http.StatusBadRequest
	case core.IsConfirmationError(err), goerrors.Is(err, core.ErrDuplicateClause):
		status = http.StatusConflict
	case goerrors.Is(err, core.ErrSyncFailed), goerrors.Is(err, core.ErrEncodingMismatch):
		status = http.StatusBadGateway
	case errors.GetCode(err) == errors.CodeValidationError:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// isValidationError matches the message-style validation errors the domain
// constructors produce.
func isValidationError(err error) bool {
	return strings.HasPrefix(err.Error(), "validation failed for ")
}
