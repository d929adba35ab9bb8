package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Index on is_active for faster filtering of the public question list.
var questionsIsActiveIndex = migrate.Step{
	Version:    "bcc65753e21d",
	Parent:     "7119b56e5e47",
	Label:      "add index on questions.is_active",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.CreateIndex{Name: "ix_questions_is_active", Table: "questions", Columns: []string{"is_active"}},
	},
	Down: []migrate.Operation{
		migrate.DropIndex{Name: "ix_questions_is_active"},
	},
}
