package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"conference-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
)

// Applies the versioned schema under migrations/ with the atlas CLI.
// Connection settings come from the same DB_* variables the server reads.
func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dir     string
		url     string
		atlas   string
		dryRun  bool
		status  bool
		timeout time.Duration
	)

	flagSet := pflag.NewFlagSet("migrate", pflag.ContinueOnError)
	flagSet.StringVar(&dir, "dir", "file://migrations", "migration directory URL")
	flagSet.StringVar(&url, "url", "", "database URL (default: built from DB_* environment variables)")
	flagSet.StringVar(&atlas, "atlas-bin", "atlas", "path to the atlas executable")
	flagSet.BoolVar(&dryRun, "dry-run", false, "print pending statements without executing them")
	flagSet.BoolVar(&status, "status", false, "report migration status and exit")
	flagSet.DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if url == "" {
		var dbCfg config.DBConfig
		if err := envconfig.Process("", &dbCfg); err != nil {
			return fmt.Errorf("failed to process env config: %w", err)
		}
		url = dbCfg.BuildDSN()
	}

	client, err := atlasexec.NewClient(".", atlas)
	if err != nil {
		return fmt.Errorf("failed to init atlas client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if status {
		st, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    url,
			DirURL: dir,
		})
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		slog.Info("migration status",
			"status", st.Status,
			"current", st.Current,
			"next", st.Next,
			"pending", len(st.Pending))
		return nil
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    url,
		DirURL: dir,
		DryRun: dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("migrations applied",
		"from", res.Current,
		"to", res.Target,
		"applied", len(res.Applied),
		"dry_run", dryRun)
	return nil
}
