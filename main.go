package main

import (
	"context"
	"log"

	"auditkit/adapters/excel"
	"auditkit/adapters/githubsync"
	"auditkit/adapters/sqlite"
	"auditkit/app"
	"auditkit/domain/checklist"
	"auditkit/internal/config"
	"auditkit/internal/seed"
	"auditkit/ui"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] config: %v", err)
	}

	repo, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		log.Fatalf("[main] open storage: %v", err)
	}
	defer repo.Close()

	var template []checklist.RawCategory
	if cfg.Storage.TemplatePath != "" {
		template, err = seed.TemplateFromFile(cfg.Storage.TemplatePath)
	} else {
		template, err = seed.Template()
	}
	if err != nil {
		log.Fatalf("[main] template: %v", err)
	}

	defaultGuidance, err := seed.Guidance()
	if err != nil {
		log.Fatalf("[main] guidance: %v", err)
	}

	audit := app.NewAuditService(repo, repo, template, defaultGuidance)
	if err := audit.Init(context.Background()); err != nil {
		log.Fatalf("[main] init audit state: %v", err)
	}

	remote := githubsync.NewClient(cfg.Sync.APIBaseURL, cfg.Sync.RequestTimeout)
	sync := app.NewSyncService(remote, audit)
	reports := excel.NewReportWriter()

	server := ui.NewServer(cfg, audit, sync, reports)
	log.Printf("[main] listening on :%s", cfg.Server.Port)
	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("[main] server: %v", err)
	}
}
