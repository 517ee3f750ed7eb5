// Package catalog holds the read-only inputs of the fusion engine: the arcana
// index (personas per arcana, ordered by level), the arcana compatibility
// relation and the treasure shift table.
//
// A Catalog is validated once in New. The engine assumes a validated catalogue
// and does not re-check provider contracts, so malformed data fails here,
// before any fusion is computed.
//
// Pointers handed out by Arcanum and Persona refer to live catalogue records
// and must be treated as read-only.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/katalvlaran/personafuse/core"
	"github.com/katalvlaran/personafuse/persona"
)

// Sentinel errors reported by validation. Every violation found by New is
// joined into one error that also matches ErrMalformed.
var (
	ErrMalformed          = errors.New("catalog: malformed catalogue")
	ErrDuplicateArcana    = errors.New("catalog: duplicate arcana")
	ErrDuplicatePersona   = errors.New("catalog: duplicate persona name")
	ErrUnsorted           = errors.New("catalog: arcana personas not sorted by level")
	ErrArcanaMismatch     = errors.New("catalog: persona listed under a different arcana")
	ErrUnknownArcana      = errors.New("catalog: unknown arcana")
	ErrConflictingResult  = errors.New("catalog: conflicting compatibility results")
	ErrSelfCompatibility  = errors.New("catalog: compatibility entry pairs an arcana with itself")
	ErrNotTreasure        = errors.New("catalog: treasure table entry for a non-treasure persona")
	ErrMissingTreasure    = errors.New("catalog: treasure persona has no shift table")
	ErrUnknownIngredient  = errors.New("catalog: guillotine ingredient is not a known persona")
	ErrUnknownTreasureRef = errors.New("catalog: treasure table names an unknown persona")
)

// Arcana is one category: its personas ascending by level and the ceiling
// for cross-arcana fusions.
type Arcana struct {
	Name     string
	Personas []*persona.Entity

	// HighestLevel is the level of the highest persona that is not a special
	// result (treasure or guillotine). Cross-arcana fusions whose calculated
	// level exceeds it are impossible.
	HighestLevel int
}

// NewArcana builds an Arcana from personas already in level order and
// computes HighestLevel.
func NewArcana(name string, personas []*persona.Entity) *Arcana {
	a := &Arcana{Name: name, Personas: personas}
	for _, p := range personas {
		if !p.Kind.IsSpecialResult() && p.Level > a.HighestLevel {
			a.HighestLevel = p.Level
		}
	}

	return a
}

// Compatibility states that personas of arcana A and B fuse into arcana
// Result. The relation is symmetric; one entry covers both orders.
type Compatibility struct {
	A      string `yaml:"a"`
	B      string `yaml:"b"`
	Result string `yaml:"result"`
}

// TreasureTable maps a treasure persona name to arcana → index shift.
type TreasureTable map[string]map[string]int

// Catalog is the validated, immutable fusion input.
type Catalog struct {
	arcana   []*Arcana
	byArcana map[string]*Arcana
	byName   map[string]*persona.Entity
	index    map[string]int // persona name → position in its arcana

	compat      []Compatibility
	compatGraph *core.Graph
	treasure    TreasureTable
}

// New validates the provider data and assembles a Catalog.
//
// Arcana keep the given order; it is the order fusion iterates in and the
// order ArcanaNames reports. Duplicate identical compatibility entries are
// tolerated, conflicting ones are not.
func New(arcana []*Arcana, compat []Compatibility, treasure TreasureTable) (*Catalog, error) {
	c := &Catalog{
		arcana:      arcana,
		byArcana:    make(map[string]*Arcana, len(arcana)),
		byName:      make(map[string]*persona.Entity),
		index:       make(map[string]int),
		compatGraph: core.NewGraph(),
		treasure:    treasure,
	}
	if c.treasure == nil {
		c.treasure = TreasureTable{}
	}

	var errs []error
	errs = append(errs, c.indexArcana()...)
	errs = append(errs, c.indexCompatibility(compat)...)
	errs = append(errs, c.checkTreasure()...)
	errs = append(errs, c.checkIngredients()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, errors.Join(errs...))
	}

	return c, nil
}

func (c *Catalog) indexArcana() []error {
	var errs []error
	for _, a := range c.arcana {
		if _, dup := c.byArcana[a.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateArcana, a.Name))
			continue
		}
		c.byArcana[a.Name] = a
		_ = c.compatGraph.AddNode(a.Name)

		if !persona.IsSortedByLevel(a.Personas) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnsorted, a.Name))
		}
		for i, p := range a.Personas {
			if err := p.Validate(); err != nil {
				errs = append(errs, err)
				continue
			}
			if p.Arcana != a.Name {
				errs = append(errs, fmt.Errorf("%w: %q is %s, listed under %s", ErrArcanaMismatch, p.Name, p.Arcana, a.Name))
			}
			if _, dup := c.byName[p.Name]; dup {
				errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicatePersona, p.Name))
				continue
			}
			c.byName[p.Name] = p
			c.index[p.Name] = i
		}
	}

	return errs
}

func (c *Catalog) indexCompatibility(entries []Compatibility) []error {
	var errs []error
	for _, e := range entries {
		known := true
		for _, name := range [...]string{e.A, e.B, e.Result} {
			if _, ok := c.byArcana[name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q in compatibility %s x %s", ErrUnknownArcana, name, e.A, e.B))
				known = false
			}
		}
		if !known {
			continue
		}
		if e.A == e.B {
			errs = append(errs, fmt.Errorf("%w: %q", ErrSelfCompatibility, e.A))
			continue
		}

		if existing := c.compatGraph.Labels(e.A, e.B); existing != nil {
			if existing[0] != e.Result {
				errs = append(errs, fmt.Errorf("%w: %s x %s is both %s and %s", ErrConflictingResult, e.A, e.B, existing[0], e.Result))
			}
			continue
		}
		_ = c.compatGraph.AddEdge(e.A, e.B, e.Result)
		_ = c.compatGraph.AddEdge(e.B, e.A, e.Result)
		c.compat = append(c.compat, e)
	}

	return errs
}

func (c *Catalog) checkTreasure() []error {
	var errs []error
	for name, shifts := range c.treasure {
		p, ok := c.byName[name]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownTreasureRef, name))
			continue
		case p.Kind != persona.KindTreasure:
			errs = append(errs, fmt.Errorf("%w: %q is %s", ErrNotTreasure, name, p.Kind))
		}
		for arcana := range shifts {
			if _, ok := c.byArcana[arcana]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q in treasure table of %s", ErrUnknownArcana, arcana, name))
			}
		}
	}
	for _, a := range c.arcana {
		for _, p := range a.Personas {
			if p.Kind != persona.KindTreasure {
				continue
			}
			if _, ok := c.treasure[p.Name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q", ErrMissingTreasure, p.Name))
			}
		}
	}

	return errs
}

func (c *Catalog) checkIngredients() []error {
	var errs []error
	for _, a := range c.arcana {
		for _, p := range a.Personas {
			for _, ing := range p.Ingredients {
				if _, ok := c.byName[ing]; !ok {
					errs = append(errs, fmt.Errorf("%w: %q needs %q", ErrUnknownIngredient, p.Name, ing))
				}
			}
		}
	}

	return errs
}

// ArcanaNames returns arcana names in catalogue order.
func (c *Catalog) ArcanaNames() []string {
	out := make([]string, len(c.arcana))
	for i, a := range c.arcana {
		out[i] = a.Name
	}

	return out
}

// Arcanum returns the arcana record by name.
func (c *Catalog) Arcanum(name string) (*Arcana, bool) {
	a, ok := c.byArcana[name]

	return a, ok
}

// Persona returns the persona record by name.
func (c *Catalog) Persona(name string) (*persona.Entity, bool) {
	p, ok := c.byName[name]

	return p, ok
}

// Len returns the number of personas.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// IndexOf returns p's position within its arcana's ordered list, or -1.
func (c *Catalog) IndexOf(p *persona.Entity) int {
	i, ok := c.index[p.Name]
	if !ok {
		return -1
	}

	return i
}

// ResultArcana resolves the arcana a fusion of personas from a and b lands
// in: a itself when a == b, otherwise the compatibility label. ok is false
// when the two arcana cannot be fused.
func (c *Catalog) ResultArcana(a, b string) (string, bool) {
	if a == b {
		_, ok := c.byArcana[a]
		return a, ok
	}
	labels := c.compatGraph.Labels(a, b)
	if len(labels) == 0 {
		return "", false
	}

	return labels[0], true
}

// Shift returns the index shift for fusing treasure with a persona of arcana.
func (c *Catalog) Shift(treasure, arcana string) (int, bool) {
	s, ok := c.treasure[treasure][arcana]

	return s, ok
}

// Compatibilities returns a copy of the accepted compatibility entries.
func (c *Catalog) Compatibilities() []Compatibility {
	return slices.Clone(c.compat)
}

// Treasure returns a deep copy of the treasure table.
func (c *Catalog) Treasure() TreasureTable {
	out := make(TreasureTable, len(c.treasure))
	for name, shifts := range c.treasure {
		m := make(map[string]int, len(shifts))
		for k, v := range shifts {
			m[k] = v
		}
		out[name] = m
	}

	return out
}

// CompatibilityGraph returns a copy of the arcana graph: nodes are arcana,
// an edge a→b labeled r means a x b = r. Every entry is stored in both
// directions.
func (c *Catalog) CompatibilityGraph() *core.Graph {
	return c.compatGraph.Clone()
}
