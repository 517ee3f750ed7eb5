package fusion

import (
	"log/slog"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/persona"
)

// build runs the derivation pass.
//
// Implementation:
//   - Stage 1: register every persona as a node, so personas without any
//     fusion still answer RelatedFusions.
//   - Stage 2: for arcana i and every j >= i, resolve the result arcana and
//     fuse each qualifying persona pair exactly once (k < l when i == j).
//
// Complexity: O(P²) pair evaluations, each O(|R|) for the level scan.
func (e *Engine) build() {
	names := e.cat.ArcanaNames()
	for _, name := range names {
		a, _ := e.cat.Arcanum(name)
		for _, p := range a.Personas {
			_ = e.fusions.AddNode(p.Name)
		}
	}

	for i, an := range names {
		a, _ := e.cat.Arcanum(an)
		for _, bn := range names[i:] {
			resName, ok := e.cat.ResultArcana(an, bn)
			if !ok {
				e.log.Debug("incompatible arcana", slog.String("a", an), slog.String("b", bn))
				continue
			}
			b, _ := e.cat.Arcanum(bn)
			res, _ := e.cat.Arcanum(resName)

			before := e.pairs
			if an == bn {
				for k := range a.Personas {
					for l := k + 1; l < len(a.Personas); l++ {
						e.fusePair(a.Personas[k], a.Personas[l], res, true)
					}
				}
			} else {
				for _, p1 := range a.Personas {
					for _, p2 := range b.Personas {
						e.fusePair(p1, p2, res, false)
					}
				}
			}
			e.log.Debug("arcana pair fused",
				slog.String("a", an),
				slog.String("b", bn),
				slog.String("result", resName),
				slog.Int("fusions", e.pairs-before),
			)
		}
	}
}

// fusePair derives and records the result of p1 x p2 landing in res.
func (e *Engine) fusePair(p1, p2 *persona.Entity, res *catalog.Arcana, sameArcana bool) {
	t1, t2 := p1.Kind == persona.KindTreasure, p2.Kind == persona.KindTreasure
	switch {
	case t1 && !t2:
		e.fuseTreasure(p1, p2)
		return
	case t2 && !t1:
		e.fuseTreasure(p2, p1)
		return
	}

	// Two treasures take the level rule like any other pair, so a
	// same-arcana treasure pair rounds down here rather than being sent to
	// the cross-arcana ceiling.
	target := targetLevel(p1, p2)
	var result *persona.Entity
	if sameArcana {
		result = floorPick(res, target, p1, p2)
	} else {
		result = ceilingPick(res, target)
	}
	if result != nil {
		e.record(result, p1, p2)
	}
}

// fuseTreasure shifts other's position within its own arcana by the
// treasure's shift for that arcana. No shift, an index outside the arcana, or
// a special result means no fusion. The pair is stored as (other, treasure).
func (e *Engine) fuseTreasure(treasure, other *persona.Entity) {
	shift, ok := e.cat.Shift(treasure.Name, other.Arcana)
	if !ok {
		return
	}
	arc, ok := e.cat.Arcanum(other.Arcana)
	if !ok {
		return
	}

	idx := e.cat.IndexOf(other) + shift
	if idx < 0 || idx >= len(arc.Personas) {
		return
	}
	if result := arc.Personas[idx]; !result.Kind.IsSpecialResult() {
		e.record(result, other, treasure)
	}
}

// targetLevel is the average of both levels biased up by one half, so exact
// midpoints never resolve low.
func targetLevel(p1, p2 *persona.Entity) float64 {
	return float64(p1.Level+p2.Level)/2.0 + 0.5
}

func eligible(c *persona.Entity) bool {
	return !c.Kind.IsSpecialResult()
}

// floorPick scans arc upward and returns the highest eligible persona at or
// below target that is neither ingredient. An exact level match ends the scan
// whether or not it is eligible.
func floorPick(arc *catalog.Arcana, target float64, p1, p2 *persona.Entity) *persona.Entity {
	var pick *persona.Entity
	for _, c := range arc.Personas {
		ok := eligible(c) && c.Name != p1.Name && c.Name != p2.Name
		level := float64(c.Level)
		switch {
		case level == target:
			if ok {
				return c
			}
			return nil
		case level > target:
			return pick
		}
		if ok {
			pick = c
		}
	}

	return pick
}

// ceilingPick scans arc downward and returns the lowest eligible persona at
// or above target. Targets above the arcana's highest level have no result;
// an exact level match ends the scan whether or not it is eligible.
func ceilingPick(arc *catalog.Arcana, target float64) *persona.Entity {
	if target > float64(arc.HighestLevel) {
		return nil
	}

	var pick *persona.Entity
	for i := len(arc.Personas) - 1; i >= 0; i-- {
		c := arc.Personas[i]
		level := float64(c.Level)
		switch {
		case level == target:
			if eligible(c) {
				return c
			}
			return nil
		case level < target:
			return pick
		}
		if eligible(c) {
			pick = c
		}
	}

	return pick
}

// record stores result for p1 x p2: both directed edges plus one reverse
// index entry.
func (e *Engine) record(result, p1, p2 *persona.Entity) {
	if err := e.fusions.AddEdge(p1.Name, p2.Name, result.Name); err != nil {
		e.log.Warn("fusion not recorded",
			slog.String("a", p1.Name),
			slog.String("b", p2.Name),
			slog.String("result", result.Name),
			slog.Any("err", err),
		)
		return
	}
	_ = e.fusions.AddEdge(p2.Name, p1.Name, result.Name)

	e.results[result.Name] = append(e.results[result.Name], ingredients{first: p1, second: p2})
	e.pairs++
}
