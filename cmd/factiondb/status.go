package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/faction-learning/factiondb/internal/cli"
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var statusDB string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current chain position",
	Long:  `Show which migration step the database currently matches and how far it is from head.`,
	Example: `  # Check status
  factiondb status --db postgres://localhost/faction_db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := resolveDSN(statusDB)
		if err != nil {
			return err
		}

		return runStatus(dsn)
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusDB, "db", "", "database URL")
}

func runStatus(dsn string) error {
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

	current, err := runner.CurrentVersion(ctx)
	if err != nil {
		return cli.GeneralError("reading schema revision", err)
	}

	head := chain.Head()
	if current == "" {
		fmt.Println("Current version:  (none, empty schema)")
	} else if step := chain.Lookup(current); step != nil {
		fmt.Printf("Current version:  %s (%s)\n", step.Version, step.Label)
	} else {
		fmt.Printf("Current version:  %s (NOT IN CHAIN)\n", current)
		fmt.Println("\nThe recorded version does not match any known step.")
		fmt.Println("The database may have been migrated by a newer or edited chain.")
		return nil
	}
	fmt.Printf("Head version:     %s (%s)\n", head.Version, head.Label)

	pending, err := chain.ResolvePath(current, head.Version)
	if err != nil {
		return cli.ChainError("resolving pending steps", err)
	}
	if len(pending) == 0 {
		fmt.Println("\nDatabase is up to date.")
	} else {
		fmt.Printf("\n%d pending step(s):\n", len(pending))
		for _, e := range pending {
			fmt.Printf("  %s  %s\n", e.Step.Version, e.Step.Label)
		}
	}
	return nil
}
