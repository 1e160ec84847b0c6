package stream

import (
	"strings"
)

// SplitLines splits a stream of text or byte units into lines.
//
// With an explicit separator the buffer is split on exact occurrences of
// it. Without one, universal newline rules apply: "\r\n", "\r", and "\n"
// each terminate a line. The final fragment of every round is held back
// as remainder, because it may be the first half of a line whose rest
// arrives with the next chunk; only at end of stream is a trailing
// unterminated fragment emitted as the last line.
//
// Output units have the same kind (string or []byte) as the input units.
type SplitLines struct {
	sep      string
	keepEnds bool
}

// NewSplitLines creates a line splitter. An empty sep selects universal
// newline handling. When keepEnds is true each emitted line retains its
// terminating separator.
func NewSplitLines(sep string, keepEnds bool) *SplitLines {
	return &SplitLines{sep: sep, keepEnds: keepEnds}
}

// Process implements the Processor interface for SplitLines.
func (s *SplitLines) Process(in []Unit, final bool) ([]Unit, []Unit, error) {
	if len(in) == 0 {
		return nil, nil, nil
	}
	_, bytesMode := in[0].([]byte)

	buf, err := joinString(in)
	if err != nil {
		return nil, nil, err
	}
	if buf == "" {
		return nil, nil, nil
	}

	var lines []string
	var tail string
	if s.sep != "" {
		lines, tail = s.splitExplicit(buf)
	} else {
		lines, tail = s.splitUniversal(buf, final)
	}

	if final && tail != "" {
		// End of stream: the unterminated fragment is the last line.
		lines = append(lines, tail)
		tail = ""
	}

	out := make([]Unit, 0, len(lines))
	for _, line := range lines {
		out = append(out, asKind(line, bytesMode))
	}
	var remainder []Unit
	if tail != "" {
		remainder = []Unit{asKind(tail, bytesMode)}
	}
	return out, remainder, nil
}

// splitExplicit splits on exact occurrences of the configured separator.
// The fragment after the last separator is the tail. A partial separator
// at the end of the buffer is naturally part of the tail, since only
// complete separators split.
func (s *SplitLines) splitExplicit(buf string) (lines []string, tail string) {
	parts := strings.Split(buf, s.sep)
	tail = parts[len(parts)-1]
	for _, part := range parts[:len(parts)-1] {
		if s.keepEnds {
			part += s.sep
		}
		lines = append(lines, part)
	}
	return lines, tail
}

// splitUniversal splits on "\r\n", "\r", and "\n". A lone "\r" at the
// very end of the buffer is ambiguous before end of stream (the matching
// "\n" may open the next chunk), so the fragment containing it is held
// back unless final is set.
func (s *SplitLines) splitUniversal(buf string, final bool) (lines []string, tail string) {
	start := 0
	i := 0
	for i < len(buf) {
		switch buf[i] {
		case '\n':
			lines = append(lines, s.line(buf, start, i, 1))
			i++
			start = i
		case '\r':
			if i == len(buf)-1 && !final {
				// Possibly the first byte of "\r\n"; decide next round.
				return lines, buf[start:]
			}
			term := 1
			if i+1 < len(buf) && buf[i+1] == '\n' {
				term = 2
			}
			lines = append(lines, s.line(buf, start, i, term))
			i += term
			start = i
		default:
			i++
		}
	}
	return lines, buf[start:]
}

// line extracts buf[start:end] plus its terminator of the given length
// when keepEnds is set.
func (s *SplitLines) line(buf string, start, end, term int) string {
	if s.keepEnds {
		return buf[start : end+term]
	}
	return buf[start:end]
}

// joinString concatenates string and byte units into one string buffer.
func joinString(in []Unit) (string, error) {
	joined, err := joinBytes(in)
	if err != nil {
		return "", err
	}
	return string(joined), nil
}

// asKind converts a processed string back to the kind of the input units.
func asKind(s string, bytesMode bool) Unit {
	if bytesMode {
		return []byte(s)
	}
	return s
}
