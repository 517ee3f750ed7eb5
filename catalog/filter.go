package catalog

import "github.com/katalvlaran/personafuse/persona"

// Filter returns a new validated Catalog holding only the personas keep
// accepts. Arcana order, compatibility entries and treasure shifts are kept;
// highest levels are recomputed. Treasure tables of dropped personas are
// dropped with them.
//
// Filtering happens before engine construction, never inside fusion.
func (c *Catalog) Filter(keep func(*persona.Entity) bool) (*Catalog, error) {
	arcana := make([]*Arcana, 0, len(c.arcana))
	for _, a := range c.arcana {
		kept := make([]*persona.Entity, 0, len(a.Personas))
		for _, p := range a.Personas {
			if keep(p) {
				kept = append(kept, p)
			}
		}
		arcana = append(arcana, NewArcana(a.Name, kept))
	}

	treasure := make(TreasureTable, len(c.treasure))
	for name, shifts := range c.Treasure() {
		if p, ok := c.byName[name]; ok && keep(p) {
			treasure[name] = shifts
		}
	}

	return New(arcana, c.Compatibilities(), treasure)
}

// WithoutDLC drops every KindDLC persona. A guillotine recipe that needs a
// DLC persona makes the result invalid and is reported by validation.
func (c *Catalog) WithoutDLC() (*Catalog, error) {
	return c.Filter(func(p *persona.Entity) bool { return p.Kind != persona.KindDLC })
}
