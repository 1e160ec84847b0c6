// Package pathspec implements parsing, serialization, and subdirectory
// translation of Git pathspecs.
//
// A pathspec combines optional "magic" modifiers, an optional directory
// prefix, and a wildcard or literal pattern:
//
//	:(icase,glob)docs/**/*.md
//	:!secrets
//	src/main.go
//
// Short-form magic signatures "/" (top) and "!" or "^" (exclude) are
// recognized, as is the long-form ":(type1,type2,...)pattern" notation.
// Only the top, exclude, icase, literal, and glob types affect behavior
// here; unknown long-form types are accepted and preserved opaquely so
// that pathspecs using future Git magic still round-trip.
//
// Everything in this package operates on plain strings. There is no
// filesystem or repository access: pathspecs can be translated for a
// subdirectory whose content is not known yet (for example an uncloned
// nested repository). The price is that translation results can be
// broader than a content-aware matcher would produce.
package pathspec

import (
	"errors"
	"fmt"
	"strings"
)

// Recognized spectype names. Any other name is carried through unchanged.
const (
	// SpecTop anchors the pattern at the working-tree root.
	SpecTop = "top"
	// SpecExclude inverts the pattern into an exclusion.
	SpecExclude = "exclude"
	// SpecICase requests case-insensitive matching.
	SpecICase = "icase"
	// SpecLiteral disables all wildcard interpretation.
	SpecLiteral = "literal"
	// SpecGlob enables full glob semantics (* does not cross "/", ** does).
	SpecGlob = "glob"
)

// PathSpec is a single parsed Git pathspec. The zero value is the special
// "match everything" spec, serialized as ":".
//
// PathSpec values are immutable: every transformation produces a new value.
type PathSpec struct {
	spectypes []string
	dirprefix string
	pattern   string
}

// ParseError reports a syntactically invalid pathspec string.
type ParseError struct {
	Spec   string // The offending pathspec string
	Reason string // Human-readable description of the problem
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid pathspec %q: %s", e.Spec, e.Reason)
}

// IsParseError checks if the error is or wraps a ParseError.
func IsParseError(err error) bool {
	if err == nil {
		return false
	}
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parse parses a raw pathspec string.
//
// It fails when the glob and literal magic types are both present; the two
// are mutually exclusive in Git and there is no sensible combined meaning.
func Parse(raw string) (PathSpec, error) {
	var spectypes []string
	var body string

	switch {
	case strings.HasPrefix(raw, ":("):
		// Long-form magic: ":(a,b,...)pattern"
		end := strings.Index(raw, ")")
		if end < 0 {
			return PathSpec{}, &ParseError{Spec: raw, Reason: "unterminated long-form magic"}
		}
		if magic := raw[2:end]; magic != "" {
			spectypes = appendUnique(nil, strings.Split(magic, ",")...)
		}
		body = raw[end+1:]

	case strings.HasPrefix(raw, ":"):
		// Short-form magic: scan signature characters after the colon.
		// The first non-signature character starts the pattern.
		rest := raw[1:]
		i := 0
	scan:
		for ; i < len(rest); i++ {
			switch rest[i] {
			case '/':
				spectypes = appendUnique(spectypes, SpecTop)
			case '!', '^':
				spectypes = appendUnique(spectypes, SpecExclude)
			default:
				break scan
			}
		}
		body = rest[i:]

	default:
		body = raw
	}

	return New(spectypes, body)
}

// New composes a PathSpec from a spectype list and a raw pattern. The
// pattern is split into dirprefix and pattern at its last "/". Like Parse,
// it rejects the glob+literal combination.
func New(spectypes []string, rawPattern string) (PathSpec, error) {
	if containsString(spectypes, SpecGlob) && containsString(spectypes, SpecLiteral) {
		return PathSpec{}, &ParseError{
			Spec:   serialize(spectypes, rawPattern),
			Reason: "'glob' and 'literal' are mutually exclusive",
		}
	}

	dirprefix, pattern := splitLastSlash(rawPattern)
	return PathSpec{
		spectypes: append([]string(nil), spectypes...),
		dirprefix: dirprefix,
		pattern:   pattern,
	}, nil
}

// MatchAll returns the special "match everything" spec.
func MatchAll() PathSpec {
	return PathSpec{}
}

// IsMatchAll reports whether p is the special "match everything" spec.
func (p PathSpec) IsMatchAll() bool {
	return len(p.spectypes) == 0 && p.dirprefix == "" && p.pattern == ""
}

// SpecTypes returns the magic modifiers in their original order.
func (p PathSpec) SpecTypes() []string {
	return append([]string(nil), p.spectypes...)
}

// DirPrefix returns the literal directory prefix, or "" if there is none.
func (p PathSpec) DirPrefix() string {
	return p.dirprefix
}

// Pattern returns the pattern part after the last "/", or "" if there is none.
func (p PathSpec) Pattern() string {
	return p.pattern
}

// HasSpecType reports whether the named magic modifier is present.
func (p PathSpec) HasSpecType(name string) bool {
	return containsString(p.spectypes, name)
}

// String serializes the pathspec back into Git syntax. The empty spec is
// rendered as ":"; magic modifiers always use the long-form notation, so
// short-form input like ":/x" serializes as ":(top)x".
func (p PathSpec) String() string {
	if p.IsMatchAll() {
		return ":"
	}
	return serialize(p.spectypes, p.joinedPattern())
}

// Equal reports structural equality: same spectypes in the same order,
// same dirprefix, same pattern.
func (p PathSpec) Equal(other PathSpec) bool {
	if len(p.spectypes) != len(other.spectypes) {
		return false
	}
	for i, st := range p.spectypes {
		if other.spectypes[i] != st {
			return false
		}
	}
	return p.dirprefix == other.dirprefix && p.pattern == other.pattern
}

// joinedPattern reassembles dirprefix and pattern into the full pattern
// string the pathspec was parsed from.
func (p PathSpec) joinedPattern() string {
	if p.dirprefix == "" {
		return p.pattern
	}
	return p.dirprefix + "/" + p.pattern
}

// withPattern derives a new PathSpec with the same spectypes but a new raw
// pattern, re-split into dirprefix and pattern.
func (p PathSpec) withPattern(rawPattern string) PathSpec {
	dirprefix, pattern := splitLastSlash(rawPattern)
	return PathSpec{
		spectypes: append([]string(nil), p.spectypes...),
		dirprefix: dirprefix,
		pattern:   pattern,
	}
}

// serialize renders spectypes and a joined pattern in long-form notation.
func serialize(spectypes []string, joined string) string {
	var sb strings.Builder
	if len(spectypes) > 0 {
		sb.WriteString(":(")
		sb.WriteString(strings.Join(spectypes, ","))
		sb.WriteString(")")
	}
	sb.WriteString(joined)
	return sb.String()
}

// splitLastSlash splits a raw pattern at its last "/" into a directory
// prefix and the trailing pattern. A pattern without "/" has no prefix.
func splitLastSlash(raw string) (dirprefix, pattern string) {
	idx := strings.LastIndex(raw, "/")
	if idx < 0 {
		return "", raw
	}
	return raw[:idx], raw[idx+1:]
}

// appendUnique appends the given values, skipping ones already present.
// Spectypes form an ordered set: insertion order is significant for
// round-trip fidelity, duplicates are not.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !containsString(list, v) {
			list = append(list, v)
		}
	}
	return list
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
