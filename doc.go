// Package personafuse precomputes every two-persona fusion of a catalogue
// and answers questions about it.
//
// A persona has a name, a base level and an arcana. Two personas fuse into
// a third whose arcana comes from a compatibility chart and whose level is
// the nearest one to the ingredients' average. Treasure personas shift
// their partner within its own arcana; guillotine personas come only from a
// fixed multi-ingredient recipe.
//
// Layout:
//
//	core/           - thread-safe directed multigraph with labelled edges
//	persona/        - Entity, Kind, Affinity and the unordered Pair
//	catalog/        - validated arcana, personas, compatibility and treasure tables
//	dataset/        - TSV and YAML loaders, plus the embedded sample catalogue
//	fusion/         - the Engine: table construction, queries and Verify
//	internal/config - environment configuration and slog setup
//	internal/cli    - the fusioncalc cobra commands and interactive shell
//	cmd/fusioncalc  - the binary
//
// Quick example:
//
//	cat, _ := dataset.Sample()
//	eng, _ := fusion.New(cat)
//	p, _ := eng.Fuse("Arsene", "Pixie")
//	fmt.Println(p.Label()) // Silky (6 / Priestess)
//
// The table is built once by New and is read-only afterwards, so an Engine
// is safe for concurrent queries.
package personafuse
