package persona

import (
	"fmt"
	"slices"
	"sort"
)

// Entity is one catalogued persona.
//
// Name is the unique, case-sensitive key across the whole catalogue.
// Ingredients is non-empty iff Kind == KindGuillotine.
type Entity struct {
	Name        string
	Arcana      string
	Level       int
	Stats       Stats
	Affinities  Affinities
	Kind        Kind
	Ingredients []string
}

// Validate checks the per-persona invariants. Cross-persona rules (unique
// names, known ingredient names) belong to the catalogue.
func (e *Entity) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if e.Arcana == "" {
		return fmt.Errorf("%q: %w", e.Name, ErrEmptyArcana)
	}
	if (e.Kind == KindGuillotine) != (len(e.Ingredients) > 0) {
		return fmt.Errorf("%q (%s): %w", e.Name, e.Kind, ErrIngredients)
	}
	if e.Kind < KindRegular || e.Kind > KindGuillotine {
		return fmt.Errorf("%q: %w: %d", e.Name, ErrUnknownKind, int(e.Kind))
	}

	return nil
}

// Clone returns a deep copy; the Ingredients slice is not shared.
func (e *Entity) Clone() Entity {
	c := *e
	c.Ingredients = slices.Clone(e.Ingredients)

	return c
}

// String returns the persona name.
func (e Entity) String() string {
	return e.Name
}

// Label renders "Name (level / Arcana)", the form used when listing fusions.
func (e Entity) Label() string {
	return fmt.Sprintf("%s (%d / %s)", e.Name, e.Level, e.Arcana)
}

// SortByLevel orders personas ascending by Level. The sort is stable, so
// personas sharing a level keep their source order.
func SortByLevel(ps []*Entity) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Level < ps[j].Level })
}

// IsSortedByLevel reports whether ps is ascending by Level.
func IsSortedByLevel(ps []*Entity) bool {
	return sort.SliceIsSorted(ps, func(i, j int) bool { return ps[i].Level < ps[j].Level })
}
