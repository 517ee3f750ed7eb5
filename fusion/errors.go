package fusion

import "errors"

// Sentinel errors for engine construction and queries.
var (
	// ErrNilCatalog indicates New was called with a nil catalogue.
	ErrNilCatalog = errors.New("fusion: catalogue is nil")

	// ErrPersonaNotFound indicates a query named an unknown persona.
	ErrPersonaNotFound = errors.New("fusion: persona not found")

	// ErrArcanaNotFound indicates a query named an unknown arcana.
	ErrArcanaNotFound = errors.New("fusion: arcana not found")

	// ErrNotApplicable indicates the persona exists but the query is
	// undefined for its kind: pairwise fusions into a treasure or guillotine
	// persona, or a guillotine recipe of any other persona.
	ErrNotApplicable = errors.New("fusion: not applicable to this persona")

	// ErrNoFusion indicates two known personas do not fuse into anything.
	ErrNoFusion = errors.New("fusion: no fusion for this pair")

	// ErrNoChain indicates no sequence of fusions leads from one persona to
	// another within the given limits.
	ErrNoChain = errors.New("fusion: no fusion chain")

	// ErrBadOption indicates an invalid ChainOption.
	ErrBadOption = errors.New("fusion: invalid option")

	// ErrInconsistent indicates Verify found the fusion graph and the
	// reverse index disagreeing.
	ErrInconsistent = errors.New("fusion: inconsistent fusion table")
)
