package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"auditkit/adapters/excel"
	"auditkit/adapters/githubsync"
	"auditkit/adapters/sqlite"
	"auditkit/app"
	"auditkit/domain/checklist"
	"auditkit/internal/config"
	"auditkit/internal/seed"
	"auditkit/ui"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "auditkit-cli",
		Short: "AuditKit CLI for running the server and working with audit state",
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newScoreCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openAudit wires storage, template and guidance into a ready service. The
// returned close func releases the database handle.
func openAudit(ctx context.Context) (*app.AuditService, *config.Config, func(), error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[cli] no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	repo, err := sqlite.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, nil, nil, err
	}

	var template []checklist.RawCategory
	if cfg.Storage.TemplatePath != "" {
		template, err = seed.TemplateFromFile(cfg.Storage.TemplatePath)
	} else {
		template, err = seed.Template()
	}
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	defaultGuidance, err := seed.Guidance()
	if err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	audit := app.NewAuditService(repo, repo, template, defaultGuidance)
	if err := audit.Init(ctx); err != nil {
		repo.Close()
		return nil, nil, nil, err
	}

	return audit, cfg, func() { repo.Close() }, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the audit tracking web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, cfg, closeFn, err := openAudit(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			remote := githubsync.NewClient(cfg.Sync.APIBaseURL, cfg.Sync.RequestTimeout)
			sync := app.NewSyncService(remote, audit)
			server := ui.NewServer(cfg, audit, sync, excel.NewReportWriter())

			log.Printf("[cli] listening on :%s", cfg.Server.Port)
			return server.Run(":" + cfg.Server.Port)
		},
	}
}

func newScoreCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the current conformance summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, _, closeFn, err := openAudit(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			summary := audit.Summary()
			if asJSON {
				payload, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(payload))
				return nil
			}

			fmt.Printf("Overall conformance: %d%%\n", summary.Overall)
			fmt.Printf("Audited items: %d/%d\n", summary.AuditedItems, summary.TotalItems)
			if summary.Baseline != nil {
				fmt.Printf("Baseline: %d%%\n", summary.Baseline.Overall)
			}
			for _, cat := range audit.Collection() {
				score := summary.Themes[cat.ID]
				fmt.Printf("  %-32s %3d%% (%d/%d conformant)\n", cat.Title, score, cat.Conformant, cat.TotalAuditable)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the summary as JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the checklist backup JSON to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, _, closeFn, err := openAudit(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			payload, err := audit.Export()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				fmt.Println(string(payload))
				return nil
			}
			if err := os.WriteFile(out, payload, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(payload), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the checklist with a previously exported backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			audit, _, closeFn, err := openAudit(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := audit.Import(cmd.Context(), payload, confirm); err != nil {
				return err
			}
			fmt.Println("checklist replaced")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "confirm", false, "Acknowledge that current audit progress will be overwritten")
	return cmd
}
