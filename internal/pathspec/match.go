package pathspec

import (
	"regexp"
	"strings"
)

// wildMatch tests a string against a shell-style wildcard pattern.
//
// This is the matching used for the internal trial tests during
// subdirectory translation: "*" matches any run of characters including
// "/", "?" matches a single character, and "[...]" matches a character
// class ("[!...]" negates). The whole string must match.
//
// The pattern is compiled to a regular expression the same way the file
// scanner compiles user-supplied patterns. A pattern that cannot be
// compiled matches nothing.
func wildMatch(s, pattern string) bool {
	re, err := compileWildcard(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(s)
}

// compileWildcard translates a shell wildcard pattern into an anchored
// regular expression.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString(`\A`)

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			// Adjacent stars collapse; ".*.*" is equivalent to ".*".
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			j := scanClass(pattern, i)
			if j < 0 {
				// Unterminated class: treat the bracket literally.
				sb.WriteString(`\[`)
				continue
			}
			sb.WriteString(translateClass(pattern[i+1 : j]))
			i = j
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	sb.WriteString(`\z`)
	return regexp.Compile(sb.String())
}

// scanClass returns the index of the "]" closing the class that opens at
// pattern[open], or -1 if the class is unterminated. A "]" directly after
// the opening bracket (or after a negation marker) is part of the class.
func scanClass(pattern string, open int) int {
	j := open + 1
	if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
		j++
	}
	if j < len(pattern) && pattern[j] == ']' {
		j++
	}
	for j < len(pattern) && pattern[j] != ']' {
		j++
	}
	if j >= len(pattern) {
		return -1
	}
	return j
}

// translateClass renders the interior of a wildcard character class as a
// regexp character class. Shell negation "!" maps to regexp "^".
func translateClass(class string) string {
	class = strings.ReplaceAll(class, `\`, `\\`)
	if strings.HasPrefix(class, "!") {
		class = "^" + class[1:]
	}
	return "[" + class + "]"
}
