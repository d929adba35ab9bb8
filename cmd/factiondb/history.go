package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the migration chain",
	Long:  `List every migration step from root to head, with reversibility.`,
	Example: `  # Show the chain
  factiondb history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := loadChain()
		if err != nil {
			return err
		}

		for _, s := range chain.Steps() {
			marker := " "
			if !s.Reversible {
				marker = "!"
			}
			parent := s.Parent
			if parent == "" {
				parent = "<base>"
			}
			fmt.Printf("%s %s -> %s  %s\n", marker, parent, s.Version, s.Label)
		}
		fmt.Println("\n! marks steps that cannot be reversed without data loss.")
		return nil
	},
}
