package fusion_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/fusion"
	"github.com/katalvlaran/personafuse/persona"
)

func mk(name, arcana string, level int) *persona.Entity {
	return &persona.Entity{Name: name, Arcana: arcana, Level: level}
}

func treasure(name, arcana string, level int) *persona.Entity {
	p := mk(name, arcana, level)
	p.Kind = persona.KindTreasure
	return p
}

func guillotine(name, arcana string, level int, ingredients ...string) *persona.Entity {
	p := mk(name, arcana, level)
	p.Kind = persona.KindGuillotine
	p.Ingredients = ingredients
	return p
}

// mustEngine builds an engine from hand-made arcana and fails the test on
// catalogue errors.
func mustEngine(t *testing.T, arcana []*catalog.Arcana, compat []catalog.Compatibility, tt catalog.TreasureTable) *fusion.Engine {
	t.Helper()
	cat, err := catalog.New(arcana, compat, tt)
	require.NoError(t, err)
	e, err := fusion.New(cat)
	require.NoError(t, err)
	return e
}

func mustFuse(t *testing.T, e *fusion.Engine, a, b string) string {
	t.Helper()
	got, err := e.Fuse(a, b)
	require.NoError(t, err, "%s x %s", a, b)
	return got.Name
}

func TestNew_NilCatalog(t *testing.T) {
	_, err := fusion.New(nil)
	require.ErrorIs(t, err, fusion.ErrNilCatalog)
}

// TestEndToEnd_PixieSlime: 5 x 5 crosses into Magician with target 5.5, and
// the ceiling skips Slime (5) to land on Mokoi (25).
func TestEndToEnd_PixieSlime(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("Fool", []*persona.Entity{mk("Pixie", "Fool", 5), mk("JackFrost", "Fool", 25)}),
			catalog.NewArcana("Magician", []*persona.Entity{mk("Slime", "Magician", 5), mk("Mokoi", "Magician", 25)}),
		},
		[]catalog.Compatibility{{A: "Fool", B: "Magician", Result: "Magician"}},
		nil,
	)

	assert.Equal(t, "Mokoi", mustFuse(t, e, "Pixie", "Slime"))
	assert.Equal(t, "Mokoi", mustFuse(t, e, "Slime", "Pixie"))

	pairs, err := e.FusionsTo("Mokoi")
	require.NoError(t, err)
	want := persona.NewPair(mk("Pixie", "Fool", 5), mk("Slime", "Magician", 5))
	found := false
	for _, p := range pairs {
		if p.Equal(want) {
			found = true
		}
	}
	assert.True(t, found, "FusionsTo(Mokoi) = %v", pairs)
}

// floorCeilingEngine holds K = [10:P, 19:S, 20:Q, 30:R] plus single-persona
// arcana A (24) and B (25) with A x B = K.
func floorCeilingEngine(t *testing.T) *fusion.Engine {
	return mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{mk("P", "K", 10), mk("S", "K", 19), mk("Q", "K", 20), mk("R", "K", 30)}),
			catalog.NewArcana("A", []*persona.Entity{mk("X", "A", 24)}),
			catalog.NewArcana("B", []*persona.Entity{mk("Y", "B", 25)}),
		},
		[]catalog.Compatibility{{A: "A", B: "B", Result: "K"}},
		nil,
	)
}

func TestSameArcana_Floor(t *testing.T) {
	e := floorCeilingEngine(t)

	// (19 + 30) / 2 + 0.5 = 25 → highest at or below 25 that is not an ingredient.
	assert.Equal(t, "Q", mustFuse(t, e, "S", "R"))
	// (10 + 30) / 2 + 0.5 = 20.5 → Q again; P and R are ingredients.
	assert.Equal(t, "Q", mustFuse(t, e, "P", "R"))
	// (10 + 19) / 2 + 0.5 = 15 → only P is at or below, and it is an ingredient.
	_, err := e.Fuse("P", "S")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
}

func TestCrossArcana_Ceiling(t *testing.T) {
	e := floorCeilingEngine(t)

	// (24 + 25) / 2 + 0.5 = 25 → lowest at or above 25.
	assert.Equal(t, "R", mustFuse(t, e, "X", "Y"))
}

func TestCrossArcana_HighestLevelGate(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{mk("P", "K", 10), mk("R", "K", 30)}),
			catalog.NewArcana("A", []*persona.Entity{mk("X", "A", 60)}),
			catalog.NewArcana("B", []*persona.Entity{mk("Y", "B", 60)}),
		},
		[]catalog.Compatibility{{A: "A", B: "B", Result: "K"}},
		nil,
	)

	_, err := e.Fuse("X", "Y")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
}

func TestExactMatchOnSpecialPersona_EndsScan(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{mk("P", "K", 10), guillotine("G", "K", 20, "P", "R"), mk("R", "K", 30)}),
			catalog.NewArcana("A", []*persona.Entity{mk("X", "A", 19)}),
			catalog.NewArcana("B", []*persona.Entity{mk("Y", "B", 20)}),
		},
		[]catalog.Compatibility{{A: "A", B: "B", Result: "K"}},
		nil,
	)

	// Target 20 hits G exactly; G is not a valid result, so R is not considered.
	_, err := e.Fuse("X", "Y")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
	// Same arcana: P x R targets 20.5, floor passes G and keeps nothing else.
	_, err = e.Fuse("P", "R")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
}

func TestTreasureShiftBoundary(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{mk("P", "K", 10), mk("Q", "K", 20), mk("R", "K", 30)}),
			catalog.NewArcana("T", []*persona.Entity{treasure("Gem", "T", 5)}),
		},
		[]catalog.Compatibility{{A: "K", B: "T", Result: "T"}},
		catalog.TreasureTable{"Gem": {"K": 1}},
	)

	// Last index + 1 is out of range.
	_, err := e.Fuse("Gem", "R")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
	// Second to last + 1 is the last persona.
	assert.Equal(t, "R", mustFuse(t, e, "Gem", "Q"))
	assert.Equal(t, "Q", mustFuse(t, e, "P", "Gem"))

	pairs, err := e.FusionsTo("R")
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "Q", pairs[0].First.Name, "regular ingredient comes first")
	assert.Equal(t, "Gem", pairs[0].Second.Name)
}

func TestTreasure_MissingShiftMeansNoFusion(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{treasure("Gem", "K", 5), mk("P", "K", 10), mk("Q", "K", 20)}),
		},
		nil,
		catalog.TreasureTable{"Gem": {}},
	)

	_, err := e.Fuse("Gem", "P")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
	// P x Q is a regular same-arcana pair: target 15.5, floor passes Gem.
	_, err = e.Fuse("P", "Q")
	require.ErrorIs(t, err, fusion.ErrNoFusion)
}

func TestTreasureTimesTreasure_UsesLevelRule(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("K", []*persona.Entity{treasure("Gem", "K", 5), mk("Z", "K", 9), treasure("Crown", "K", 15)}),
		},
		nil,
		catalog.TreasureTable{"Gem": {"K": 1}, "Crown": {"K": -1}},
	)

	// (5 + 15) / 2 + 0.5 = 10.5 → floor lands on Z; the shift tables are ignored.
	assert.Equal(t, "Z", mustFuse(t, e, "Gem", "Crown"))
}

func TestIncompatibleArcana(t *testing.T) {
	e := mustEngine(t,
		[]*catalog.Arcana{
			catalog.NewArcana("A", []*persona.Entity{mk("X", "A", 10)}),
			catalog.NewArcana("B", []*persona.Entity{mk("Y", "B", 10)}),
		},
		nil,
		nil,
	)

	_, err := e.Fuse("X", "Y")
	require.ErrorIs(t, err, fusion.ErrNoFusion)

	related, err := e.RelatedFusions("X")
	require.NoError(t, err)
	assert.Empty(t, related)
}
