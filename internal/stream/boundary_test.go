package stream

import (
	"strings"
	"testing"
)

func TestNewBoundaryRejectsEmptyPattern(t *testing.T) {
	if _, err := NewBoundary(nil); err == nil {
		t.Fatal("expected error for empty pattern")
	}
	if _, err := NewBoundary([]byte{}); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestBoundaryMergesShortUnits(t *testing.T) {
	b, err := NewBoundary([]byte("XYZ"))
	if err != nil {
		t.Fatalf("NewBoundary returned error: %v", err)
	}

	out, remainder, err := b.Process([]Unit{"a", "b", "cdef"}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 1 || out[0].(string) != "abcdef" {
		t.Fatalf("out = %v, want [abcdef]", out)
	}
	if len(remainder) != 0 {
		t.Fatalf("remainder = %v, want none", remainder)
	}
}

func TestBoundaryHoldsPatternPrefixSuffix(t *testing.T) {
	b, err := NewBoundary([]byte("XYZ"))
	if err != nil {
		t.Fatalf("NewBoundary returned error: %v", err)
	}

	// "dataXY" ends with a proper prefix of "XYZ": the "Z" completing
	// the pattern may open the next chunk, so the unit is held back.
	out, remainder, err := b.Process([]Unit{"dataXY"}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("out = %v, want none", out)
	}
	if len(remainder) != 1 || remainder[0].(string) != "dataXY" {
		t.Fatalf("remainder = %v, want [dataXY]", remainder)
	}

	// With the rest of the data the pattern is whole inside one unit.
	out, remainder, err = b.Process([]Unit{"dataXY", "Ztail0"}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 1 || out[0].(string) != "dataXYZtail0" {
		t.Fatalf("out = %v, want [dataXYZtail0]", out)
	}
	if len(remainder) != 0 {
		t.Fatalf("remainder = %v, want none", remainder)
	}
	if !strings.Contains(out[0].(string), "XYZ") {
		t.Fatal("naive substring test must find the pattern")
	}
}

func TestBoundaryFinalFlushesShortTail(t *testing.T) {
	b, err := NewBoundary([]byte("XYZ"))
	if err != nil {
		t.Fatalf("NewBoundary returned error: %v", err)
	}

	out, remainder, err := b.Process([]Unit{"aX"}, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("remainder = %v, want none when final", remainder)
	}
	if len(out) != 1 || out[0].(string) != "aX" {
		t.Fatalf("out = %v, want [aX]", out)
	}
}

func TestBoundaryInvariants(t *testing.T) {
	// Property check: over an adversarial chunking, (1) concatenated
	// output reproduces the input exactly and (2) no unit except the
	// last ends with a proper non-empty prefix of the pattern.
	pattern := "SEP"
	input := "aSEPbbSSEPcSE" + "PdS" + "ESEPe"
	chunkings := [][]string{
		{input},
		{"aSE", "Pbb", "S", "SEPcSE", "Pd", "S", "ESEPe"},
		splitEvery(input, 1),
		splitEvery(input, 2),
		splitEvery(input, 5),
	}

	for _, chunks := range chunkings {
		b, err := NewBoundary([]byte(pattern))
		if err != nil {
			t.Fatalf("NewBoundary returned error: %v", err)
		}
		p := NewPipeline(b)

		var units []string
		for _, chunk := range chunks {
			out, err := p.Process(chunk)
			if err != nil {
				t.Fatalf("Process returned error: %v", err)
			}
			for _, u := range out {
				units = append(units, u.(string))
			}
		}
		out, err := p.Finalize()
		if err != nil {
			t.Fatalf("Finalize returned error: %v", err)
		}
		for _, u := range out {
			units = append(units, u.(string))
		}

		if got := strings.Join(units, ""); got != input {
			t.Fatalf("chunking %v: reassembled %q, want %q", chunks, got, input)
		}
		for i, unit := range units {
			if i == len(units)-1 {
				continue
			}
			for k := 1; k < len(pattern); k++ {
				if strings.HasSuffix(unit, pattern[:k]) {
					t.Fatalf("chunking %v: unit %q ends with pattern prefix %q", chunks, unit, pattern[:k])
				}
			}
			if len(unit) < len(pattern) {
				t.Fatalf("chunking %v: non-final unit %q shorter than pattern", chunks, unit)
			}
		}
	}
}

func splitEvery(s string, n int) []string {
	var out []string
	for len(s) > n {
		out = append(out, s[:n])
		s = s[n:]
	}
	return append(out, s)
}
