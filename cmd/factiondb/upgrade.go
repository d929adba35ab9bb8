package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/faction-learning/factiondb/internal/cli"
	"github.com/faction-learning/factiondb/migrations"
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var (
	upgradeDB     string
	upgradeTo     string
	upgradeDryRun bool
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Apply migration steps forward",
	Long:  `Apply upgrade steps from the database's current version to the target version.`,
	Example: `  # Upgrade to the chain head
  factiondb upgrade --db postgres://localhost/faction_db

  # Upgrade to a specific version
  factiondb upgrade --db postgres://localhost/faction_db --to bcc65753e21d

  # Preview the SQL without applying
  factiondb upgrade --db postgres://localhost/faction_db --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun := resolveBool(upgradeDryRun, cfg.Upgrade.DryRun)

		dsn, err := resolveDSN(upgradeDB)
		if err != nil {
			return err
		}

		return runMigration(dsn, upgradeTo, migrate.Options{}, dryRun)
	},
}

func init() {
	f := upgradeCmd.Flags()
	f.StringVar(&upgradeDB, "db", "", "database URL")
	f.StringVar(&upgradeTo, "to", "head", `target version (or "head")`)
	f.BoolVar(&upgradeDryRun, "dry-run", false, "output migration SQL without applying")
}

// resolveDSN gets the database DSN from flag or config.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}

	dsn, err := cfg.DSN()
	if err != nil {
		return "", cli.ConfigError("database configuration", err)
	}
	if dsn == "" {
		return "", cli.ConfigError("database URL is required (use --db or set in config)", nil)
	}
	return dsn, nil
}

// loadChain builds the platform chain, mapping validation failures to the
// chain exit code.
func loadChain() (*migrate.Chain, error) {
	chain, err := migrations.Chain()
	if err != nil {
		return nil, cli.ChainError("invalid migration chain", err)
	}
	return chain, nil
}

// resolveTarget maps the CLI keywords "head" and "base" onto chain versions.
func resolveTarget(chain *migrate.Chain, target string) string {
	switch target {
	case "head":
		if head := chain.Head(); head != nil {
			return head.Version
		}
		return ""
	case "base":
		return ""
	default:
		return target
	}
}

// runMigration drives both upgrade and downgrade: open, resolve, apply.
func runMigration(dsn, target string, opts migrate.Options, dryRun bool) error {
	chain, err := loadChain()
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return cli.DBConnectError("connecting to database", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	runner := migrate.NewRunner(db, chain)

	if dryRun {
		opts.DryRun = os.Stdout
		if !quiet {
			fmt.Fprintln(os.Stderr, "-- Dry-run mode: SQL will be output but not applied")
			fmt.Fprintln(os.Stderr, "")
		}
	}

	res, err := runner.MigrateTo(ctx, resolveTarget(chain, target), opts)
	if err != nil {
		var opErr *migrate.OperationError
		switch {
		case errors.As(err, &opErr):
			return cli.GeneralError(fmt.Sprintf("migration failed at step %s (rolled back)", opErr.Version), err)
		case migrate.IsUnknownVersionErr(err), errors.Is(err, migrate.ErrDisconnectedChain):
			return cli.ChainError("resolving migration path", err)
		case errors.Is(err, migrate.ErrIrreversible):
			return cli.GeneralError("refusing downgrade", err)
		}
		return cli.GeneralError("migration failed", err)
	}

	if dryRun {
		return nil
	}

	if !quiet {
		printResult(res)
	}
	return nil
}

func printResult(res *migrate.Result) {
	if len(res.Applied) == 0 {
		fmt.Println("Database already at requested version, nothing to do.")
		return
	}
	for _, e := range res.Applied {
		fmt.Printf("%s %s: %s\n", e.Direction, e.Step.Version, e.Step.Label)
	}
	for _, v := range res.Irreversible {
		fmt.Printf("WARNING: %s was not reversible; data destroyed by its upgrade is gone.\n", v)
	}
	fmt.Printf("Applied %d step(s).\n", len(res.Applied))
}
