package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var notificationsTable = migrate.Step{
	Version:    "f1a2b3c4d5e6",
	Parent:     "2d8c54a7f00b",
	Label:      "add notifications table",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.CreateTable{
			Name: "notifications",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "user_id", Type: "uuid"},
				{Name: "title", Type: "varchar(200)"},
				{Name: "message", Type: "text"},
				{Name: "type", Type: "varchar(50)", Default: "'info'"},
				{Name: "is_read", Type: "boolean", Default: "false"},
				{Name: "data", Type: "text", Nullable: true},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
			ForeignKeys: []migrate.ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnDelete: "CASCADE"},
			},
		},
		migrate.CreateIndex{Name: "ix_notifications_user_id", Table: "notifications", Columns: []string{"user_id"}},
		migrate.CreateIndex{Name: "ix_notifications_is_read", Table: "notifications", Columns: []string{"is_read"}},
		migrate.CreateIndex{Name: "ix_notifications_created_at", Table: "notifications", Columns: []string{"created_at"}},
	},
	Down: []migrate.Operation{
		migrate.DropIndex{Name: "ix_notifications_created_at"},
		migrate.DropIndex{Name: "ix_notifications_is_read"},
		migrate.DropIndex{Name: "ix_notifications_user_id"},
		migrate.DropTable{Name: "notifications"},
	},
}
