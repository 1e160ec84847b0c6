package pathspec

import (
	"testing"
)

// mustParse is a test helper that fails the test on a parse error.
func mustParse(t *testing.T, raw string) PathSpec {
	t.Helper()
	spec, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", raw, err)
	}
	return spec
}

// translateStrings runs ForSubdir and serializes the results for easy
// comparison.
func translateStrings(t *testing.T, raw, subdir string) []string {
	t.Helper()
	results := mustParse(t, raw).ForSubdir(subdir)
	out := make([]string, 0, len(results))
	for _, spec := range results {
		out = append(out, spec.String())
	}
	return out
}

func TestForSubdirIdentity(t *testing.T) {
	// An empty subdir leaves any spec untouched.
	for _, raw := range []string{":", "a/b", ":(top)x", ":(glob)**/*.go", ":(literal)a"} {
		spec := mustParse(t, raw)
		got := spec.ForSubdir("")
		if len(got) != 1 || !got[0].Equal(spec) {
			t.Errorf("ForSubdir(%q, \"\") = %v, want identity", raw, got)
		}
	}
}

func TestForSubdirTopInvariance(t *testing.T) {
	// "top" refers to the working-tree root, so descending changes nothing.
	for _, subdir := range []string{"a", "a/b", "deep/nested/dir/"} {
		spec := mustParse(t, ":(top)some/path")
		got := spec.ForSubdir(subdir)
		if len(got) != 1 || !got[0].Equal(spec) {
			t.Errorf("ForSubdir(top spec, %q) = %v, want identity", subdir, got)
		}
	}
}

func TestForSubdirMatchAllInvariance(t *testing.T) {
	got := MatchAll().ForSubdir("some/dir")
	if len(got) != 1 || !got[0].IsMatchAll() {
		t.Errorf("ForSubdir(match-all, \"some/dir\") = %v, want match-all", got)
	}
}

func TestForSubdirLiteral(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		subdir string
		want   []string
	}{
		{
			name:   "pattern below subdir",
			raw:    ":(literal)a/b",
			subdir: "a",
			want:   []string{":(literal)b"},
		},
		{
			name:   "pattern names subdir",
			raw:    ":(literal)a/b",
			subdir: "a/b",
			want:   []string{":"},
		},
		{
			name:   "subdir nested inside pattern dir",
			raw:    ":(literal)a",
			subdir: "a/b/c",
			want:   []string{":"},
		},
		{
			name:   "unrelated sibling",
			raw:    ":(literal)a/x",
			subdir: "a/b",
			want:   nil,
		},
		{
			name:   "partial name must not match",
			raw:    ":(literal)ab/file",
			subdir: "abc",
			want:   nil,
		},
		{
			name:   "trailing slash on subdir accepted",
			raw:    ":(literal)a/b/c",
			subdir: "a/b/",
			want:   []string{":(literal)c"},
		},
		{
			name:   "wildcard chars stay literal",
			raw:    ":(literal)a/*.go",
			subdir: "a",
			want:   []string{":(literal)*.go"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateStrings(t, tc.raw, tc.subdir)
			assertStringSlices(t, got, tc.want)
		})
	}
}

func TestForSubdirPlain(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		subdir string
		want   []string
	}{
		{
			name:   "no wildcard below subdir",
			raw:    "a/b/c",
			subdir: "a/b",
			want:   []string{"c"},
		},
		{
			name:   "no wildcard names subdir",
			raw:    "a/b",
			subdir: "a/b",
			want:   []string{":"},
		},
		{
			name:   "subdir nested inside pattern dir",
			raw:    "a",
			subdir: "a/b",
			want:   []string{":"},
		},
		{
			name:   "unrelated",
			raw:    "b",
			subdir: "a",
			want:   nil,
		},
		{
			name:   "partial name must not match",
			raw:    "ab",
			subdir: "abc",
			want:   nil,
		},
		{
			name:   "trailing wildcard covers subdir",
			raw:    "a*",
			subdir: "ab",
			want:   []string{":"},
		},
		{
			name:   "leading wildcard survives descent",
			raw:    "*.go",
			subdir: "src",
			want:   []string{"*.go"},
		},
		{
			name:   "mid wildcard yields all candidates",
			raw:    "a/*/c",
			subdir: "a/b",
			want:   []string{"*/c", "c"},
		},
		{
			name:   "exclude magic carried on remainder",
			raw:    ":!a/b",
			subdir: "a",
			want:   []string{":(exclude)b"},
		},
		{
			name:   "deep subdir under wildcard pattern",
			raw:    "*",
			subdir: "a/b",
			want:   []string{":"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateStrings(t, tc.raw, tc.subdir)
			assertStringSlices(t, got, tc.want)
		})
	}
}

func TestForSubdirGlob(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		subdir string
		want   []string
	}{
		{
			name:   "double star re-offered and narrowed",
			raw:    ":(glob)**/*.dat",
			subdir: "sub",
			want:   []string{":(glob)**/*.dat", ":(glob)*.dat"},
		},
		{
			name:   "anchored glob below subdir",
			raw:    ":(glob)a/b/*.go",
			subdir: "a/b",
			want:   []string{":(glob)*.go"},
		},
		{
			name:   "glob does not reach sibling",
			raw:    ":(glob)src/**",
			subdir: "docs",
			want:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := translateStrings(t, tc.raw, tc.subdir)
			assertStringSlices(t, got, tc.want)
		})
	}
}

func TestForSubdirICase(t *testing.T) {
	got := translateStrings(t, ":(icase)A/B", "a")
	assertStringSlices(t, got, []string{":(icase)b"})

	got = translateStrings(t, ":(icase)a/b", "A")
	assertStringSlices(t, got, []string{":(icase)b"})
}

func TestForSubdirLiteralICase(t *testing.T) {
	// Translation folds both sides, so the folded remainder is offered.
	// Git itself does not honor icase together with literal magic and
	// reports no match for this spec; that discrepancy is documented and
	// deliberate (see DESIGN.md).
	got := translateStrings(t, ":(icase,literal)A/B", "a")
	assertStringSlices(t, got, []string{":(icase,literal)b"})
}

func TestForSubdirNoDuplicateYields(t *testing.T) {
	// A pattern of repeated identical wildcard chunks must not yield the
	// same reconstruction twice.
	got := translateStrings(t, "a/*/*/b", "a/x")
	seen := make(map[string]bool)
	for _, s := range got {
		if seen[s] {
			t.Fatalf("duplicate yield %q in %v", s, got)
		}
		seen[s] = true
	}
}

func TestForSubdirUnknownMagicPassthrough(t *testing.T) {
	// Unknown spectypes do not affect translation; they ride along.
	got := translateStrings(t, ":(attr:export-ignore)a/b", "a")
	assertStringSlices(t, got, []string{":(attr:export-ignore)b"})
}

func assertStringSlices(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
