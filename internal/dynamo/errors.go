package dynamo

import "errors"

// Domain errors for sharer construction and composition.
var (
	// ErrArityMismatch indicates a sharer's port count disagrees with the
	// box it is assigned to.
	ErrArityMismatch = errors.New("dynwire: port count does not match box arity")

	// ErrPortOutOfRange indicates a port map entry outside the state range.
	ErrPortOutOfRange = errors.New("dynwire: portmap index outside state range")

	// ErrDimensionMismatch indicates a state or dynamics vector of the
	// wrong length, surfaced at evaluation time.
	ErrDimensionMismatch = errors.New("dynwire: dimension mismatch")

	// ErrBlockMismatch indicates sharers with different port block sizes
	// in one composition.
	ErrBlockMismatch = errors.New("dynwire: mismatched port block sizes")

	// ErrMixedSystems indicates boxes holding different system variants.
	ErrMixedSystems = errors.New("dynwire: boxes hold different system kinds")

	// ErrUnfilledBox indicates a diagram box with no sharer assigned.
	ErrUnfilledBox = errors.New("dynwire: no sharer supplied for box")

	// ErrDanglingOuterPort indicates an outer port whose junction touches
	// no box port, leaving it no state to expose.
	ErrDanglingOuterPort = errors.New("dynwire: outer port junction has no attached ports")

	// ErrNotContinuous indicates a transform that requires a continuous
	// system was given another variant.
	ErrNotContinuous = errors.New("dynwire: system is not continuous")
)
