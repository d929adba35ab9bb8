package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faction-learning/factiondb/internal/cli"
	"github.com/faction-learning/factiondb/migrations"
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check chain invariants",
	Long: `Check the migration chain's structural invariants without touching a
database: single root, no cycles, no duplicate versions, no branches, and no
step declared reversible while its upgrade destroys data.`,
	Example: `  # Validate the chain
  factiondb validate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := migrations.Steps()
		errs := migrate.Validate(steps)
		if len(errs) > 0 {
			for _, e := range errs {
				fmt.Println(" -", e)
			}
			return cli.ChainError(fmt.Sprintf("chain has %d structural error(s)", len(errs)), nil)
		}

		if !quiet {
			fmt.Printf("Chain is valid: %d steps, single linear history.\n", len(steps))
		}
		return nil
	},
}
