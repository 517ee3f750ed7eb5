package fusion

import (
	"log/slog"
	"time"

	"github.com/katalvlaran/personafuse/catalog"
	"github.com/katalvlaran/personafuse/core"
	"github.com/katalvlaran/personafuse/persona"
)

// Engine holds the precomputed fusion relation of one catalogue.
type Engine struct {
	cat *catalog.Catalog
	log *slog.Logger

	// fusions has one node per persona; an edge a→b labeled r means a x b = r.
	fusions *core.Graph

	// results maps a result name to its ingredient pairs, in derivation order.
	results map[string][]ingredients

	pairs     int
	buildTime time.Duration
}

// ingredients is one reverse-index entry. Both fields point at catalogue
// records; copies are made only when a query hands a pair out.
type ingredients struct {
	first, second *persona.Entity
}

// key is the order-independent identity of the pair.
func (in ingredients) key() [2]string {
	a, b := in.first.Name, in.second.Name
	if b < a {
		a, b = b, a
	}

	return [2]string{a, b}
}

// Stats summarises a built Engine.
type Stats struct {
	Personas  int
	Arcana    int
	Fusions   int // unordered ingredient pairs with a result
	Results   int // distinct personas reachable by a two-persona fusion
	Edges     int // directed edges in the fusion graph, 2 x Fusions
	BuildTime time.Duration
}

// New builds an Engine from a validated catalogue. The whole derivation pass
// runs here; the returned Engine never changes.
func New(cat *catalog.Catalog, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}

	e := &Engine{
		cat:     cat,
		log:     discardLogger(),
		fusions: core.NewGraph(),
		results: make(map[string][]ingredients),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With(slog.String("component", "fusion"))

	start := time.Now()
	e.build()
	e.buildTime = time.Since(start)

	st := e.Stats()
	e.log.Info("fusion table built",
		slog.Int("personas", st.Personas),
		slog.Int("arcana", st.Arcana),
		slog.Int("fusions", st.Fusions),
		slog.Int("results", st.Results),
		slog.Duration("took", st.BuildTime),
	)

	return e, nil
}

// Stats returns size counters and the build duration.
func (e *Engine) Stats() Stats {
	return Stats{
		Personas:  e.cat.Len(),
		Arcana:    len(e.cat.ArcanaNames()),
		Fusions:   e.pairs,
		Results:   len(e.results),
		Edges:     e.fusions.EdgeCount(),
		BuildTime: e.buildTime,
	}
}

// Catalog returns the catalogue the engine was built from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}
