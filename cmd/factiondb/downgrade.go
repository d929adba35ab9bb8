package main

import (
	"github.com/spf13/cobra"

	"github.com/faction-learning/factiondb/pkg/migrate"
)

var (
	downgradeDB     string
	downgradeTo     string
	downgradeDryRun bool
	downgradeForce  bool
)

var downgradeCmd = &cobra.Command{
	Use:   "downgrade",
	Short: "Revert migration steps",
	Long: `Revert downgrade steps from the database's current version back to the
target version. Paths that cross a non-reversible step are refused unless
--force acknowledges the data loss.`,
	Example: `  # Downgrade one step back to a specific version
  factiondb downgrade --db postgres://localhost/faction_db --to g2b3c4d5e6f7

  # Downgrade everything, leaving an empty schema
  factiondb downgrade --db postgres://localhost/faction_db --to base --force

  # Preview the SQL without applying
  factiondb downgrade --db postgres://localhost/faction_db --to base --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun := resolveBool(downgradeDryRun, cfg.Downgrade.DryRun)
		force := resolveBool(downgradeForce, cfg.Downgrade.Force)

		dsn, err := resolveDSN(downgradeDB)
		if err != nil {
			return err
		}

		return runMigration(dsn, downgradeTo, migrate.Options{Force: force}, dryRun)
	},
}

func init() {
	f := downgradeCmd.Flags()
	f.StringVar(&downgradeDB, "db", "", "database URL")
	f.StringVar(&downgradeTo, "to", "", `target version (or "base" for the empty schema)`)
	f.BoolVar(&downgradeDryRun, "dry-run", false, "output migration SQL without applying")
	f.BoolVar(&downgradeForce, "force", false, "downgrade through non-reversible steps (data stays lost)")
	_ = downgradeCmd.MarkFlagRequired("to")
}
