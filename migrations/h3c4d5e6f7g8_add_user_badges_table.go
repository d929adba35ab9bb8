package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var userBadgesTable = migrate.Step{
	Version:    "h3c4d5e6f7g8",
	Parent:     "g2b3c4d5e6f7",
	Label:      "add user_badges table",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.CreateTable{
			Name: "user_badges",
			Columns: []migrate.Column{
				{Name: "user_id", Type: "uuid"},
				{Name: "badge_id", Type: "uuid"},
				{Name: "earned_at", Type: "timestamp", Default: "now()"},
				{Name: "progress", Type: "integer", Default: "0"},
				{Name: "is_seen", Type: "boolean", Default: "false"},
			},
			PrimaryKey: []string{"user_id", "badge_id"},
			ForeignKeys: []migrate.ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}},
				{Columns: []string{"badge_id"}, RefTable: "badges", RefColumns: []string{"id"}},
			},
		},
		migrate.CreateIndex{Name: "ix_user_badges_user_id", Table: "user_badges", Columns: []string{"user_id"}},
		migrate.CreateIndex{Name: "ix_user_badges_badge_id", Table: "user_badges", Columns: []string{"badge_id"}},
	},
	Down: []migrate.Operation{
		migrate.DropIndex{Name: "ix_user_badges_badge_id"},
		migrate.DropIndex{Name: "ix_user_badges_user_id"},
		migrate.DropTable{Name: "user_badges"},
	},
}
