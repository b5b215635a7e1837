package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wadjakorntonsri/fanlink/pkg/app"
	"github.com/wadjakorntonsri/fanlink/pkg/config"
	"github.com/wadjakorntonsri/fanlink/pkg/core/domain"
	"github.com/wadjakorntonsri/fanlink/pkg/logging"
	"github.com/wadjakorntonsri/fanlink/pkg/ports"
)

const usage = "expected 'export', 'import', 'migrate-links' or 'seed-templates' subcommands"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	migrateCmd := flag.NewFlagSet("migrate-links", flag.ExitOnError)
	dryRun := migrateCmd.Bool("dry-run", false, "report changes without writing")
	seedCmd := flag.NewFlagSet("seed-templates", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	cfg := config.Load()
	logger := logging.Init(logging.Config{Level: cfg.LogLevel, Format: "text", Writer: os.Stderr})
	ctx := context.Background()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	switch os.Args[1] {
	case "export":
		_ = exportCmd.Parse(os.Args[2:])
		err = doExport(ctx, a.Repo, os.Stdout)
	case "import":
		_ = importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		err = doImportFile(ctx, a.Repo, *importFile, logger)
	case "migrate-links":
		_ = migrateCmd.Parse(os.Args[2:])
		err = doMigrate(ctx, a.Profiles, *dryRun, os.Stdout)
	case "seed-templates":
		_ = seedCmd.Parse(os.Args[2:])
		err = doSeed(ctx, a.Templates, logger)
	default:
		fmt.Println(usage)
		os.Exit(1)
	}

	if err != nil {
		logger.Error(os.Args[1]+" failed", "error", err)
		os.Exit(1)
	}
}

func doExport(ctx context.Context, repo ports.ProfileRepository, out io.Writer) error {
	docs, err := repo.Dump(ctx)
	if err != nil {
		return err
	}
	if docs == nil {
		docs = []domain.ProfileDocument{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(docs)
}

func doImportFile(ctx context.Context, repo ports.ProfileRepository, filename string, logger *slog.Logger) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	count, err := doImport(ctx, repo, file, logger)
	if err != nil {
		return err
	}
	logger.Info("import finished", "imported", count)
	return nil
}

// doImport stores exported documents as they are, legacy fields included.
// Owners or site ids that already exist are skipped.
func doImport(ctx context.Context, repo ports.ProfileRepository, in io.Reader, logger *slog.Logger) (int, error) {
	var docs []domain.ProfileDocument
	if err := json.NewDecoder(in).Decode(&docs); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	count := 0
	for i := range docs {
		doc := &docs[i]
		if doc.OwnerID == "" || doc.SiteID == "" {
			logger.Warn("skipping document without owner or site id", "index", i)
			continue
		}

		fields, err := doc.Fields()
		if err != nil {
			return count, err
		}
		err = repo.Create(ctx, doc.OwnerID, doc.SiteID, fields)
		switch {
		case errors.Is(err, domain.ErrProfileExists), errors.Is(err, domain.ErrSiteIDTaken):
			logger.Info("skipping existing profile", "owner_id", doc.OwnerID, "site_id", doc.SiteID)
		case err != nil:
			logger.Error("failed to import", "owner_id", doc.OwnerID, "error", err)
		default:
			count++
		}
	}
	return count, nil
}

func doMigrate(ctx context.Context, profiles ports.ProfileService, dryRun bool, out io.Writer) error {
	report, err := profiles.MigrateLinks(ctx, dryRun)
	if report != nil {
		fmt.Fprintf(out, "scanned=%d updated=%d items=%d dry_run=%t\n", report.Scanned, report.Updated, report.ItemsWritten, dryRun)
	}
	return err
}

func doSeed(ctx context.Context, templates ports.TemplateService, logger *slog.Logger) error {
	written, err := templates.SeedTemplates(ctx, domain.BuiltinTemplates)
	if err != nil {
		return err
	}
	logger.Info("templates seeded", "written", written, "total", len(domain.BuiltinTemplates))
	return nil
}
