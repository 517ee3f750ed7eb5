package dataset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/persona"
)

// Bundle is the YAML form of a whole catalogue.
//
//	arcana:
//	  - name: Lovers
//	    personas:
//	      - name: Pixie
//	        level: 2
//	        stats: [1, 3, 1, 3, 2]
//	        affinities: [neutral, neutral, neutral, neutral, resist, neutral, neutral, neutral, resist, weak]
//	compatibility:
//	  - {a: Fool, b: Lovers, result: Priestess}
//	treasure:
//	  Regent: {Fool: 1, Lovers: -1}
//
// Affinities accept either the long names or the short codes; kind defaults
// to regular.
type Bundle struct {
	Arcana        []BundleArcana          `yaml:"arcana"`
	Compatibility []catalog.Compatibility `yaml:"compatibility"`
	Treasure      catalog.TreasureTable   `yaml:"treasure,omitempty"`
}

// BundleArcana is one arcana section of a Bundle.
type BundleArcana struct {
	Name     string          `yaml:"name"`
	Personas []BundlePersona `yaml:"personas"`
}

// BundlePersona is one persona record of a Bundle.
type BundlePersona struct {
	Name        string             `yaml:"name"`
	Level       int                `yaml:"level"`
	Stats       []int              `yaml:"stats,flow"`
	Affinities  []persona.Affinity `yaml:"affinities,flow"`
	Kind        persona.Kind       `yaml:"kind,omitempty"`
	Ingredients []string           `yaml:"ingredients,omitempty,flow"`
}

// LoadBundle decodes a YAML bundle and validates it into a Catalog.
func LoadBundle(r io.Reader) (*catalog.Catalog, error) {
	var b Bundle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: bundle: %v", ErrSyntax, err)
	}

	return b.Catalog()
}

// Catalog converts the bundle into a validated Catalog.
func (b *Bundle) Catalog() (*catalog.Catalog, error) {
	arcana := make([]*catalog.Arcana, 0, len(b.Arcana))
	for _, ba := range b.Arcana {
		members := make([]*persona.Entity, 0, len(ba.Personas))
		for _, bp := range ba.Personas {
			p, err := bp.entity(ba.Name)
			if err != nil {
				return nil, err
			}
			members = append(members, p)
		}
		arcana = append(arcana, catalog.NewArcana(ba.Name, members))
	}

	return catalog.New(arcana, b.Compatibility, b.Treasure)
}

func (bp BundlePersona) entity(arcana string) (*persona.Entity, error) {
	if len(bp.Stats) != persona.NumStats {
		return nil, fmt.Errorf("%w: %s: want %d stats, got %d", ErrSyntax, bp.Name, persona.NumStats, len(bp.Stats))
	}
	if len(bp.Affinities) != persona.NumElements {
		return nil, fmt.Errorf("%w: %s: want %d affinities, got %d", ErrSyntax, bp.Name, persona.NumElements, len(bp.Affinities))
	}

	p := &persona.Entity{
		Name:        bp.Name,
		Arcana:      arcana,
		Level:       bp.Level,
		Kind:        bp.Kind,
		Ingredients: bp.Ingredients,
	}
	copy(p.Stats[:], bp.Stats)
	copy(p.Affinities[:], bp.Affinities)

	return p, nil
}

// NewBundle renders a Catalog as a Bundle, the inverse of Bundle.Catalog.
func NewBundle(c *catalog.Catalog) *Bundle {
	b := &Bundle{
		Compatibility: c.Compatibilities(),
		Treasure:      c.Treasure(),
	}
	for _, name := range c.ArcanaNames() {
		a, _ := c.Arcanum(name)
		ba := BundleArcana{Name: name, Personas: make([]BundlePersona, 0, len(a.Personas))}
		for _, p := range a.Personas {
			ba.Personas = append(ba.Personas, BundlePersona{
				Name:        p.Name,
				Level:       p.Level,
				Stats:       append([]int(nil), p.Stats[:]...),
				Affinities:  append([]persona.Affinity(nil), p.Affinities[:]...),
				Kind:        p.Kind,
				Ingredients: append([]string(nil), p.Ingredients...),
			})
		}
		b.Arcana = append(b.Arcana, ba)
	}

	return b
}

// WriteBundle encodes c as a YAML bundle.
func WriteBundle(w io.Writer, c *catalog.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewBundle(c)); err != nil {
		return fmt.Errorf("dataset: encode bundle: %w", err)
	}

	return enc.Close()
}
