package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Composite index for counting a user's correct attempts, plus a single
// index on is_correct for general queries.
var attemptCorrectnessIndexes = migrate.Step{
	Version:    "f281cab1aa97",
	Parent:     "bcc65753e21d",
	Label:      "add question_attempts correctness indexes",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.CreateIndex{
			Name:    "ix_question_attempts_user_id_is_correct",
			Table:   "question_attempts",
			Columns: []string{"user_id", "is_correct"},
		},
		migrate.CreateIndex{
			Name:    "ix_question_attempts_is_correct",
			Table:   "question_attempts",
			Columns: []string{"is_correct"},
		},
	},
	Down: []migrate.Operation{
		migrate.DropIndex{Name: "ix_question_attempts_is_correct"},
		migrate.DropIndex{Name: "ix_question_attempts_user_id_is_correct"},
	},
}
