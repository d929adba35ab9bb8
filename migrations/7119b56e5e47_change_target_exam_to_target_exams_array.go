package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Replaces the single target_exam enum with a JSON array so students can
// prepare for several exams at once. Modeled as drop-old + add-new, not an
// in-place type alteration: every stored enum value is discarded on upgrade.
// Downgrade restores the column shape only, which is why the step is not
// reversible. The NOT NULL array column ships with a server default so
// existing rows backfill to '[]' instead of violating the constraint.
var targetExamsArray = migrate.Step{
	Version:    "7119b56e5e47",
	Parent:     "0d13a7dacaa4",
	Label:      "change target_exam to target_exams array",
	Reversible: false,
	Up: []migrate.Operation{
		migrate.DropColumn{Table: "users", Column: "target_exam"},
		migrate.AddColumn{
			Table:  "users",
			Column: migrate.Column{Name: "target_exams", Type: "json", Default: "'[]'"},
		},
	},
	Down: []migrate.Operation{
		migrate.DropColumn{Table: "users", Column: "target_exams"},
		migrate.AddColumn{
			Table:  "users",
			Column: migrate.Column{Name: "target_exam", Type: "targetexam"},
		},
	},
}
