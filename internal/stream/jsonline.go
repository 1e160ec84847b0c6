package stream

import (
	"encoding/json"
)

// Result is the outcome of parsing one unit as a JSON document.
type Result struct {
	// OK indicates the unit parsed as self-contained JSON.
	OK bool

	// Value holds the parsed document when OK is true.
	Value any

	// Raw is the original input unit, parseable or not.
	Raw Unit
}

// JSONLine parses each input unit as one self-contained JSON document.
//
// It assumes line-delimited input: one unit, one document. Feed it from a
// SplitLines stage (or another already-delimiting source); units with
// embedded newlines are a caller error that is not detected here. It
// never buffers, so a unit that fails to parse is reported immediately
// as a Result with OK=false rather than retried with more data.
type JSONLine struct{}

// Process implements the Processor interface for JSONLine.
func (JSONLine) Process(in []Unit, final bool) ([]Unit, []Unit, error) {
	out := make([]Unit, 0, len(in))
	for _, unit := range in {
		data, err := unitString(unit)
		if err != nil {
			return nil, nil, err
		}
		var value any
		if err := json.Unmarshal([]byte(data), &value); err != nil {
			out = append(out, Result{OK: false, Raw: unit})
			continue
		}
		out = append(out, Result{OK: true, Value: value, Raw: unit})
	}
	return out, nil, nil
}
