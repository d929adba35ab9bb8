package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Root of the chain: the tables the platform launched with. users still
// carries the single target_exam enum column here; 7119b56e5e47 replaces it.
var createCoreTables = migrate.Step{
	Version:    "0d13a7dacaa4",
	Parent:     "",
	Label:      "create core tables",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.RawSQL{Stmt: `CREATE TYPE targetexam AS ENUM ('JEE_ADVANCED', 'JEE_MAINS', 'NEET', 'OLYMPIAD', 'CBSE')`},
		migrate.CreateTable{
			Name: "users",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "phone_number", Type: "varchar(15)"},
				{Name: "name", Type: "varchar(100)"},
				{Name: "class_level", Type: "varchar(10)"},
				{Name: "target_exam", Type: "targetexam"},
				{Name: "is_active", Type: "boolean", Default: "true"},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
			Uniques: []migrate.Unique{
				{Name: "uq_users_phone_number", Columns: []string{"phone_number"}},
			},
		},
		migrate.CreateTable{
			Name: "questions",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "question_text", Type: "text"},
				{Name: "difficulty_level", Type: "integer", Default: "1"},
				{Name: "time_limit", Type: "integer", Default: "120"},
				{Name: "points", Type: "integer", Default: "10"},
				{Name: "is_active", Type: "boolean", Default: "true"},
				{Name: "is_premium", Type: "boolean", Default: "false"},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
		},
		migrate.CreateTable{
			Name: "question_attempts",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "user_id", Type: "uuid"},
				{Name: "question_id", Type: "uuid"},
				{Name: "is_correct", Type: "boolean", Default: "false"},
				{Name: "attempted_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
			ForeignKeys: []migrate.ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnDelete: "CASCADE"},
				{Columns: []string{"question_id"}, RefTable: "questions", RefColumns: []string{"id"}, OnDelete: "CASCADE"},
			},
		},
		migrate.CreateTable{
			Name: "youtube_videos",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "title", Type: "varchar(200)"},
				{Name: "url", Type: "text"},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
		},
		migrate.CreateTable{
			Name: "badges",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "name", Type: "varchar(100)"},
				{Name: "description", Type: "text", Nullable: true},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
		},
	},
	Down: []migrate.Operation{
		migrate.DropTable{Name: "badges"},
		migrate.DropTable{Name: "youtube_videos"},
		migrate.DropTable{Name: "question_attempts"},
		migrate.DropTable{Name: "questions"},
		migrate.DropTable{Name: "users"},
		migrate.RawSQL{Stmt: `DROP TYPE targetexam`},
	},
}
