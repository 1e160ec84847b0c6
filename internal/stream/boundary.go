package stream

import (
	"fmt"
)

// Boundary re-chunks a stream so a fixed literal pattern can never be
// split across two output units. Downstream stages may then use a naive
// substring test per unit to find the pattern.
//
// Guarantees on the output units:
//
//  1. Every unit is at least as long as the pattern, except possibly the
//     very last one at end of stream.
//  2. No unit except the last ends with a non-empty proper prefix of the
//     pattern.
//
// Adjacent input units are merged forward while the accumulated unit is
// still shorter than the pattern or ends with a pattern prefix; before
// end of stream such an accumulated unit is held back as remainder.
// Concatenating all output (plus any held remainder) always reproduces
// the input exactly.
type Boundary struct {
	pattern string
}

// NewBoundary creates a Boundary processor for the given literal pattern.
// An empty pattern is rejected: there is no boundary to preserve.
func NewBoundary(pattern []byte) (*Boundary, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("boundary: pattern must not be empty")
	}
	return &Boundary{pattern: string(pattern)}, nil
}

// Process implements the Processor interface for Boundary. Units may be
// strings or []byte; output units keep the input kind.
func (b *Boundary) Process(in []Unit, final bool) ([]Unit, []Unit, error) {
	if len(in) == 0 {
		return nil, nil, nil
	}
	_, bytesMode := in[0].([]byte)

	var out []Unit
	acc := ""
	for _, unit := range in {
		s, err := unitString(unit)
		if err != nil {
			return nil, nil, err
		}
		acc += s
		if len(acc) < len(b.pattern) || b.endsWithPatternPrefix(acc) {
			// Keep merging; the pattern might straddle this edge.
			continue
		}
		out = append(out, asKind(acc, bytesMode))
		acc = ""
	}

	if acc == "" {
		return out, nil, nil
	}
	if final {
		return append(out, asKind(acc, bytesMode)), nil, nil
	}
	return out, []Unit{asKind(acc, bytesMode)}, nil
}

// endsWithPatternPrefix reports whether s ends with a non-empty proper
// prefix of the pattern.
func (b *Boundary) endsWithPatternPrefix(s string) bool {
	max := len(b.pattern) - 1
	if len(s) < max {
		max = len(s)
	}
	for k := max; k >= 1; k-- {
		if s[len(s)-k:] == b.pattern[:k] {
			return true
		}
	}
	return false
}

// unitString converts a string or []byte unit to a string.
func unitString(unit Unit) (string, error) {
	switch v := unit.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported unit type %T", unit)
	}
}
