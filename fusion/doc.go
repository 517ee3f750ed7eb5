// Package fusion computes every two-persona fusion of a catalogue once and
// answers queries against the result.
//
// New runs a single derivation pass over a validated catalog.Catalog:
//
//   - arcana are walked in catalogue order, each paired with itself and with
//     every arcana after it, so each unordered persona pair is seen once;
//   - the result arcana is the arcana itself for same-arcana pairs, otherwise
//     the compatibility label; incompatible arcana are skipped;
//   - exactly one treasure ingredient selects the persona shifted from the
//     other ingredient's position in its own arcana;
//   - everything else uses the level rule
//     target = (level1 + level2) / 2 + 0.5,
//     rounding down within the same arcana (floor, never an ingredient) and
//     up across arcana (ceiling, gated by the arcana's highest level);
//   - treasure and guillotine personas are never a two-persona result.
//
// Each result is stored as two directed edges p1→p2 and p2→p1 in a core.Graph
// labeled with the result's name, plus one Pair in a reverse index keyed by
// the result.
//
// Chain walks the same graph breadth-first to find the shortest sequence of
// fusions from one persona to another.
//
// An Engine is immutable after New and safe for concurrent queries. Every
// value it returns is a copy.
//
// Errors:
//
//	ErrNilCatalog      - New called without a catalogue.
//	ErrPersonaNotFound - unknown persona name.
//	ErrArcanaNotFound  - unknown arcana name.
//	ErrNotApplicable   - the query is undefined for that persona's kind.
//	ErrNoFusion        - two known personas do not fuse.
//	ErrNoChain         - Chain found no route between two personas.
//	ErrBadOption       - an invalid ChainOption.
//	ErrInconsistent    - Verify found a broken table.
package fusion
