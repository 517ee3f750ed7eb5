package fusion

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/personafuse/persona"
)

// Fusion is one row of RelatedFusions: the queried persona fused with
// Partner yields Result.
type Fusion struct {
	Partner persona.Entity
	Result  persona.Entity
}

func (e *Engine) lookup(name string) (*persona.Entity, error) {
	p, ok := e.cat.Persona(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPersonaNotFound, name)
	}

	return p, nil
}

// Persona returns a copy of the named persona.
func (e *Engine) Persona(name string) (persona.Entity, error) {
	p, err := e.lookup(name)
	if err != nil {
		return persona.Entity{}, err
	}

	return p.Clone(), nil
}

// Arcana returns arcana names in catalogue order.
func (e *Engine) Arcana() []string {
	return e.cat.ArcanaNames()
}

// PersonasIn returns copies of an arcana's personas, ascending by level.
func (e *Engine) PersonasIn(arcana string) ([]persona.Entity, error) {
	a, ok := e.cat.Arcanum(arcana)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArcanaNotFound, arcana)
	}

	out := make([]persona.Entity, len(a.Personas))
	for i, p := range a.Personas {
		out[i] = p.Clone()
	}

	return out, nil
}

// FusionsTo returns every ingredient pair whose fusion yields name, in
// derivation order. Treasure and guillotine personas are never a two-persona
// result and report ErrNotApplicable. A persona nothing fuses into yields an
// empty, non-nil slice.
func (e *Engine) FusionsTo(name string) ([]persona.Pair, error) {
	p, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	if p.Kind.IsSpecialResult() {
		return nil, fmt.Errorf("%w: %q is a %s persona", ErrNotApplicable, name, p.Kind)
	}

	src := e.results[name]
	out := make([]persona.Pair, len(src))
	for i, in := range src {
		out[i] = persona.NewPair(in.first, in.second)
	}

	return out, nil
}

// SpecialRecipe returns the fixed ingredient list of a guillotine persona.
func (e *Engine) SpecialRecipe(name string) ([]string, error) {
	p, err := e.lookup(name)
	if err != nil {
		return nil, err
	}
	if p.Kind != persona.KindGuillotine {
		return nil, fmt.Errorf("%w: %q is a %s persona", ErrNotApplicable, name, p.Kind)
	}

	return append([]string(nil), p.Ingredients...), nil
}

// Fuse returns the persona that a x b yields. Argument order does not matter.
func (e *Engine) Fuse(a, b string) (persona.Entity, error) {
	if _, err := e.lookup(a); err != nil {
		return persona.Entity{}, err
	}
	if _, err := e.lookup(b); err != nil {
		return persona.Entity{}, err
	}

	labels := e.fusions.Labels(a, b)
	if len(labels) == 0 {
		return persona.Entity{}, fmt.Errorf("%w: %s x %s", ErrNoFusion, a, b)
	}

	return e.Persona(labels[0])
}

// RelatedFusions lists every fusion name takes part in, one row per partner,
// sorted by partner name.
func (e *Engine) RelatedFusions(name string) ([]Fusion, error) {
	if _, err := e.lookup(name); err != nil {
		return nil, err
	}

	partners := e.fusions.Children(name)
	out := make([]Fusion, 0, len(partners))
	for _, partner := range partners {
		labels := e.fusions.Labels(name, partner)
		if len(labels) == 0 {
			continue
		}
		pp, _ := e.cat.Persona(partner)
		rp, _ := e.cat.Persona(labels[0])
		out = append(out, Fusion{Partner: pp.Clone(), Result: rp.Clone()})
	}

	return out, nil
}

// Results returns the distinct names reachable by fusing name with any other
// persona, sorted.
func (e *Engine) Results(name string) ([]string, error) {
	if _, err := e.lookup(name); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, partner := range e.fusions.Children(name) {
		for _, l := range e.fusions.Labels(name, partner) {
			seen[l] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)

	return out, nil
}
