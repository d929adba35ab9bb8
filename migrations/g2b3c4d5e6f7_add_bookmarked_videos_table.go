package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

var bookmarkedVideosTable = migrate.Step{
	Version:    "g2b3c4d5e6f7",
	Parent:     "f1a2b3c4d5e6",
	Label:      "add bookmarked_videos table",
	Reversible: true,
	Up: []migrate.Operation{
		migrate.CreateTable{
			Name: "bookmarked_videos",
			Columns: []migrate.Column{
				{Name: "id", Type: "uuid"},
				{Name: "user_id", Type: "uuid"},
				{Name: "youtube_video_id", Type: "uuid"},
				{Name: "created_at", Type: "timestamp", Default: "now()"},
			},
			PrimaryKey: []string{"id"},
			ForeignKeys: []migrate.ForeignKey{
				{Columns: []string{"user_id"}, RefTable: "users", RefColumns: []string{"id"}, OnDelete: "CASCADE"},
				{Columns: []string{"youtube_video_id"}, RefTable: "youtube_videos", RefColumns: []string{"id"}, OnDelete: "CASCADE"},
			},
			Uniques: []migrate.Unique{
				{Name: "unique_user_video_bookmark", Columns: []string{"user_id", "youtube_video_id"}},
			},
		},
		migrate.CreateIndex{Name: "ix_bookmarked_videos_user_id", Table: "bookmarked_videos", Columns: []string{"user_id"}},
		migrate.CreateIndex{Name: "ix_bookmarked_videos_youtube_video_id", Table: "bookmarked_videos", Columns: []string{"youtube_video_id"}},
		migrate.CreateIndex{Name: "ix_bookmarked_videos_created_at", Table: "bookmarked_videos", Columns: []string{"created_at"}},
	},
	Down: []migrate.Operation{
		migrate.DropIndex{Name: "ix_bookmarked_videos_created_at"},
		migrate.DropIndex{Name: "ix_bookmarked_videos_youtube_video_id"},
		migrate.DropIndex{Name: "ix_bookmarked_videos_user_id"},
		migrate.DropTable{Name: "bookmarked_videos"},
	},
}
