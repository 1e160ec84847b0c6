package pathspec

import (
	"strings"
)

// ForSubdir rewrites the pathspec, which is defined relative to some
// directory, into the equivalent set of pathspecs relative to the given
// subdirectory of it. subdir is a POSIX-style relative path ("sub/dir");
// a trailing "/" is optional.
//
// The computation is purely lexical. It never consults a filesystem or
// repository, so it works for subdirectories whose content is unknown
// (an uncloned nested repository, for example). Because a wildcard match
// is ambiguous about how much of the subdir it consumed, translation can
// yield several alternative pathspecs; a path matching any of them counts
// as a match of the original. Results can therefore be broader than what
// a content-aware matcher would produce, never narrower.
//
// An empty result is not an error: it is the answer "this pathspec does
// not apply to that subdirectory at all".
func (p PathSpec) ForSubdir(subdir string) []PathSpec {
	// An empty subdir changes nothing.
	if subdir == "" {
		return []PathSpec{p}
	}
	// "top" anchors the spec at the working-tree root, so descending into
	// a subdirectory does not affect it. The match-everything spec stays
	// the match-everything spec wherever it is applied.
	if p.HasSpecType(SpecTop) || p.IsMatchAll() {
		return []PathSpec{p}
	}

	// The trailing "/" prevents partial-name false matches: pattern "ab"
	// must not appear to cover subdir "abc".
	if !strings.HasSuffix(subdir, "/") {
		subdir += "/"
	}

	joined := p.joinedPattern()
	if p.HasSpecType(SpecICase) {
		subdir = strings.ToLower(subdir)
		joined = strings.ToLower(joined)
	}

	if p.HasSpecType(SpecLiteral) {
		return p.translateLiteral(subdir, joined)
	}
	return p.translateWildcard(subdir, joined)
}

// translateLiteral handles specs with literal magic: no character of the
// pattern is a wildcard, so translation is plain prefix arithmetic.
// subdir carries a trailing "/"; both inputs are already case-folded when
// icase is in play.
func (p PathSpec) translateLiteral(subdir, joined string) []PathSpec {
	if strings.HasPrefix(joined+"/", subdir) {
		// The pattern points at or below the subdir; strip the subdir.
		if len(joined) < len(subdir) {
			// The pattern names the subdir itself.
			return []PathSpec{MatchAll()}
		}
		remainder := joined[len(subdir):]
		if remainder == "" {
			return []PathSpec{MatchAll()}
		}
		return []PathSpec{p.withPattern(remainder)}
	}

	// The subdir may instead be nested inside the directory the pattern
	// narrows to, in which case nothing further constrains its content.
	for _, ancestor := range ancestors(subdir) {
		if joined == ancestor {
			return []PathSpec{MatchAll()}
		}
	}

	// The pathspec does not apply to this subdir at all.
	return nil
}

// translateWildcard handles plain and glob-magic specs.
//
// The joined pattern is tokenized on the wildcard delimiter ("**" for glob
// magic, "*" otherwise) and the chunks are walked left to right. After
// each chunk a trial pattern built from the chunks consumed so far is
// matched against the subdir:
//
//   - A matching chunk with more (non-empty) chunks to come yields a
//     reconstructed spec for the unconsumed rest and the walk continues,
//     because a greedy wildcard is ambiguous about how much of the subdir
//     it swallowed. Several yields across the walk are expected; exact
//     duplicates are suppressed.
//   - A matching chunk with nothing left to match yields the
//     match-everything spec.
//   - The first failing chunk ends the walk, after two fallbacks: a
//     truncation of the trial pattern at a "/" boundary that covers the
//     whole subdir yields the rebuilt remainder; failing that, a trial
//     pattern covering an ancestor of the subdir means the subdir lies
//     inside the pattern's reach and everything in it matches.
func (p PathSpec) translateWildcard(subdir, joined string) []PathSpec {
	delim := "*"
	if p.HasSpecType(SpecGlob) {
		delim = "**"
	}
	chunks := strings.Split(joined, delim)

	var out []PathSpec
	seen := make(map[string]bool)
	add := func(spec PathSpec) {
		key := spec.String()
		if !seen[key] {
			seen[key] = true
			out = append(out, spec)
		}
	}

	prefix := ""
	for i, chunk := range chunks {
		trial := prefix + chunk

		if i < len(chunks)-1 && wildMatch(subdir, trial+delim) {
			rest := chunks[i+1:]
			if allEmpty(rest) {
				// The pattern ends in wildcards; they cover the whole
				// subdir and everything below it.
				add(MatchAll())
				break
			}
			add(p.withPattern(delim + strings.Join(rest, delim)))
			prefix = trial + delim
			continue
		}

		if i == len(chunks)-1 && wildMatch(subdir, trial+"/") {
			// The complete pattern names the subdir.
			add(MatchAll())
			break
		}

		// This chunk does not cover the subdir. Try the fallbacks before
		// giving up.
		if remainder, ok := remainderByTruncation(subdir, trial, chunks[i+1:], delim); ok {
			if remainder == "" {
				add(MatchAll())
			} else {
				add(p.withPattern(remainder))
			}
			break
		}
		if reachesAncestor(subdir, trial) {
			add(MatchAll())
		}
		break
	}

	return out
}

// remainderByTruncation looks for a "/" boundary in the trial pattern,
// rightmost first, whose head covers the entire subdir. The text after
// the boundary, re-joined with any unconsumed chunks, is the remainder
// pattern valid inside the subdir.
func remainderByTruncation(subdir, trial string, rest []string, delim string) (string, bool) {
	for j := len(trial) - 1; j >= 0; j-- {
		if trial[j] != '/' {
			continue
		}
		head := trial[:j+1]
		if !wildMatch(subdir, head) {
			continue
		}
		remainder := trial[j+1:]
		if len(rest) > 0 {
			remainder += delim + strings.Join(rest, delim)
		}
		return remainder, true
	}
	return "", false
}

// reachesAncestor reports whether the trial pattern, taken as a complete
// directory pattern, covers one of the subdir's proper ancestors. If it
// does, the subdir is nested inside a directory the pattern already
// narrows to.
func reachesAncestor(subdir, trial string) bool {
	for _, ancestor := range ancestors(subdir) {
		if wildMatch(ancestor+"/", trial+"/") {
			return true
		}
	}
	return false
}

// ancestors returns the proper ancestors of a directory path, deepest
// first: ancestors("a/b/c/") is ["a/b", "a"]. The root is not included.
func ancestors(dir string) []string {
	dir = strings.TrimSuffix(dir, "/")
	var out []string
	for {
		idx := strings.LastIndex(dir, "/")
		if idx < 0 {
			return out
		}
		dir = dir[:idx]
		out = append(out, dir)
	}
}

func allEmpty(chunks []string) bool {
	for _, c := range chunks {
		if c != "" {
			return false
		}
	}
	return true
}
