package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faction-learning/factiondb/pkg/migrate"
)

func TestChain_IsStructurallyValid(t *testing.T) {
	errs := migrate.Validate(Steps())
	assert.Empty(t, errs)
}

func TestChain_RootAndHead(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	assert.Equal(t, "0d13a7dacaa4", chain.Root().Version)
	assert.Equal(t, "h3c4d5e6f7g8", chain.Head().Version)
	assert.Len(t, chain.Steps(), 8)
}

func TestChain_TargetExamsStepIsNotReversible(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	step := chain.Lookup("7119b56e5e47")
	require.NotNil(t, step)
	assert.False(t, step.Reversible, "enum column values dropped on upgrade cannot be restored")
	assert.True(t, step.Lossy())

	// Every other step in the chain is structural-only and reversible.
	for _, s := range chain.Steps() {
		if s.Version == "7119b56e5e47" {
			continue
		}
		assert.True(t, s.Reversible, s.Version)
		assert.False(t, s.Lossy(), s.Version)
	}
}

func TestChain_TargetExamsBackfillsWithDefault(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	step := chain.Lookup("7119b56e5e47")
	require.NotNil(t, step)

	// The replacement column is NOT NULL on a table that already holds rows,
	// so it must ship a server default.
	var add *migrate.AddColumn
	for _, op := range step.Up {
		if a, ok := op.(migrate.AddColumn); ok {
			add = &a
		}
	}
	require.NotNil(t, add)
	assert.Equal(t, "target_exams", add.Column.Name)
	assert.False(t, add.Column.Nullable)
	assert.Equal(t, "'[]'", add.Column.Default)
}

func TestChain_EveryStepHasDowngradeOps(t *testing.T) {
	for _, s := range Steps() {
		assert.NotEmpty(t, s.Down, "step %s must declare downgrade operations", s.Version)
	}
}

func TestResolvePath_UpgradeScenario(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	plan, err := chain.ResolvePath("7119b56e5e47", "f281cab1aa97")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "bcc65753e21d", plan[0].Step.Version)
	assert.Equal(t, migrate.DirectionUp, plan[0].Direction)
	assert.Equal(t, "f281cab1aa97", plan[1].Step.Version)
}

func TestResolvePath_DowngradeScenario(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	plan, err := chain.ResolvePath("f281cab1aa97", "7119b56e5e47")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "f281cab1aa97", plan[0].Step.Version)
	assert.Equal(t, migrate.DirectionDown, plan[0].Direction)
	assert.Equal(t, "bcc65753e21d", plan[1].Step.Version)
	assert.Equal(t, migrate.DirectionDown, plan[1].Direction)
}

func TestResolvePath_FullChainVisitsEveryStepOnce(t *testing.T) {
	chain, err := Chain()
	require.NoError(t, err)

	plan, err := chain.ResolvePath("", chain.Head().Version)
	require.NoError(t, err)
	require.Len(t, plan, len(chain.Steps()))

	seen := map[string]bool{}
	prev := ""
	for _, e := range plan {
		assert.Equal(t, migrate.DirectionUp, e.Direction)
		assert.False(t, seen[e.Step.Version])
		seen[e.Step.Version] = true
		assert.Equal(t, prev, e.Step.Parent, "steps must come out in parent-to-child order")
		prev = e.Step.Version
	}
}
