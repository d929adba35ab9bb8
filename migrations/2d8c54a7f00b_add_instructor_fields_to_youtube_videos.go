package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Attribution fields for curated videos. Nullable, so no backfill needed.
var videoInstructorFields = migrate.Step{
	Version:    "2d8c54a7f00b",
	Parent:     "f281cab1aa97",
	Label:      "add instructor fields to youtube_videos",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.AddColumn{
			Table:  "youtube_videos",
			Column: migrate.Column{Name: "instructor_name", Type: "varchar(100)", Nullable: true},
		},
		migrate.AddColumn{
			Table:  "youtube_videos",
			Column: migrate.Column{Name: "instructor_institution", Type: "varchar(100)", Nullable: true},
		},
	},
	Down: []migrate.Operation{
		migrate.DropColumn{Table: "youtube_videos", Column: "instructor_institution"},
		migrate.DropColumn{Table: "youtube_videos", Column: "instructor_name"},
	},
}
