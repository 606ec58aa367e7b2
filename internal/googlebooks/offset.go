package googlebooks

import "fmt"

// OffsetWindow bounds how deep into the result list the random page may start.
const OffsetWindow = 30

// OffsetStrategy decides the start index of the second volumes request
// from the first response's totalItems.
type OffsetStrategy string

const (
	// OffsetClamp draws uniformly from [0, min(totalItems, OffsetWindow)).
	OffsetClamp OffsetStrategy = "clamp"
	// OffsetModulo draws uniformly from [0, totalItems % OffsetWindow],
	// inclusive. Legacy behaviour: it collapses to the first page when
	// totalItems is a multiple of 30.
	OffsetModulo OffsetStrategy = "modulo"
)

// ParseOffsetStrategy converts a config value into an OffsetStrategy.
// The empty string selects OffsetClamp.
func ParseOffsetStrategy(s string) (OffsetStrategy, error) {
	switch OffsetStrategy(s) {
	case "", OffsetClamp:
		return OffsetClamp, nil
	case OffsetModulo:
		return OffsetModulo, nil
	default:
		return "", fmt.Errorf("unknown offset strategy %q (want %q or %q)", s, OffsetClamp, OffsetModulo)
	}
}

// Offset returns a start index for a subject with totalItems results.
func (s OffsetStrategy) Offset(totalItems int, rng Rand) int {
	if totalItems <= 0 {
		return 0
	}
	if rng == nil {
		rng = DefaultRand
	}

	switch s {
	case OffsetModulo:
		return rng.IntN(totalItems%OffsetWindow + 1)
	default:
		return rng.IntN(min(totalItems, OffsetWindow))
	}
}
