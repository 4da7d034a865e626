package assemble

import "errors"

// Failures surface wrapped in these sentinels; match them with errors.Is.
// None of them carries a partial result.
var (
	// ErrMalformedInput: no fragments, an empty or duplicate fragment, or a
	// chain head that is missing or not unique.
	ErrMalformedInput = errors.New("malformed input")

	// ErrStalledAssembly: fragments remain but no link continues the chain
	// (cyclic or disconnected overlap graph).
	ErrStalledAssembly = errors.New("stalled assembly")

	// ErrCombinerBounds: a recorded overlap does not fit the fragment it is
	// applied to.
	ErrCombinerBounds = errors.New("overlap out of bounds")
)
