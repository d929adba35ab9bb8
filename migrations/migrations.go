// Package migrations holds the Faction platform's schema migration chain.
//
// One file per step, named after its version token. Steps are append-only:
// once a version has been applied to a shared environment it is never edited,
// only superseded by a new head.
package migrations

import (
	"github.com/faction-learning/factiondb/pkg/migrate"
)

// Steps returns every migration step in declaration order. Order here is
// cosmetic; the chain is rebuilt from parent links.
func Steps() []migrate.Step {
	return []migrate.Step{
		createCoreTables,
		targetExamsArray,
		questionsIsActiveIndex,
		attemptCorrectnessIndexes,
		videoInstructorFields,
		notificationsTable,
		bookmarkedVideosTable,
		userBadgesTable,
	}
}

// Chain validates the step set and returns the ordered chain.
func Chain() (*migrate.Chain, error) {
	return migrate.NewChain(Steps())
}
