package stream

import (
	"testing"
)

func TestDecoderSplitMultibyte(t *testing.T) {
	// "ö" is 0xC3 0xB6 in UTF-8. Fed one byte at a time, nothing may be
	// emitted until the sequence is complete.
	dec, err := NewDecoder("utf-8")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}

	out, remainder, err := dec.Process([]Unit{[]byte{0xC3}}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no output for incomplete sequence, got %v", out)
	}
	if len(remainder) != 1 {
		t.Fatalf("expected entire input as remainder, got %v", remainder)
	}

	out, remainder, err = dec.Process([]Unit{[]byte{0xC3}, []byte{0xB6}}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("expected no remainder, got %v", remainder)
	}
	if len(out) != 1 || out[0].(string) != "ö" {
		t.Fatalf("expected [\"ö\"], got %v", out)
	}
}

func TestDecoderFinalFallbackEscapes(t *testing.T) {
	// A truncated sequence at end of stream is escaped, not an error.
	dec, err := NewDecoder("utf-8")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}

	out, remainder, err := dec.Process([]Unit{[]byte{0xC3}}, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("expected no remainder when final, got %v", remainder)
	}
	if len(out) != 1 || out[0].(string) != `\xc3` {
		t.Fatalf("expected [\\xc3], got %v", out)
	}
}

func TestDecoderEscapesMidStreamGarbage(t *testing.T) {
	dec, err := NewDecoder("utf-8")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}

	// Valid text around a stray continuation byte.
	out, _, err := dec.Process([]Unit{[]byte("ok"), []byte{0xFF}, []byte("go")}, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 1 || out[0].(string) != `ok\xffgo` {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestDecoderLatin1(t *testing.T) {
	dec, err := NewDecoder("ISO-8859-1")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}
	if dec.Name() != "iso-8859-1" {
		t.Errorf("Name() = %q, want \"iso-8859-1\"", dec.Name())
	}

	// 0xE9 is "é" in latin-1; every byte is a complete character.
	out, remainder, err := dec.Process([]Unit{[]byte{0xE9}}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("expected no remainder, got %v", remainder)
	}
	if len(out) != 1 || out[0].(string) != "é" {
		t.Fatalf("expected [\"é\"], got %v", out)
	}
}

func TestDecoderShiftJISSplitMultibyte(t *testing.T) {
	// "あ" is 0x82 0xA0 in Shift_JIS. The first byte alone must be held
	// as remainder, not substituted with U+FFFD, until its partner
	// arrives in a later round.
	dec, err := NewDecoder("shift_jis")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}

	out, remainder, err := dec.Process([]Unit{[]byte{0x82}}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("first byte emitted output %v; want held as remainder", out)
	}
	if len(remainder) != 1 {
		t.Fatalf("expected entire input as remainder, got %v", remainder)
	}

	out, remainder, err = dec.Process([]Unit{[]byte{0x82}, []byte{0xA0}}, false)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("expected no remainder, got %v", remainder)
	}
	if len(out) != 1 || out[0].(string) != "あ" {
		t.Fatalf("expected [\"あ\"], got %v", out)
	}
}

func TestDecoderShiftJISFinalFallbackEscapes(t *testing.T) {
	dec, err := NewDecoder("shift_jis")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}

	// A complete character followed by a truncated one: the text is
	// kept, the orphan lead byte is escaped.
	out, remainder, err := dec.Process([]Unit{[]byte{0x82, 0xA0, 0x82}}, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(remainder) != 0 {
		t.Fatalf("expected no remainder when final, got %v", remainder)
	}
	if len(out) != 1 || out[0].(string) != `あ\x82` {
		t.Fatalf("expected [あ\\x82], got %v", out)
	}
}

func TestDecoderUnknownEncoding(t *testing.T) {
	_, err := NewDecoder("no-such-encoding")
	if err == nil {
		t.Fatal("expected error for unknown encoding")
	}
	if !IsDecodeError(err) {
		t.Errorf("error = %v, want DecodeError", err)
	}
}

func TestDecoderDefaultsToUTF8(t *testing.T) {
	dec, err := NewDecoder("")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}
	if dec.Name() != "utf-8" {
		t.Errorf("Name() = %q, want \"utf-8\"", dec.Name())
	}
}

func TestDecoderEmptyInput(t *testing.T) {
	dec, err := NewDecoder("utf-8")
	if err != nil {
		t.Fatalf("NewDecoder returned error: %v", err)
	}
	out, remainder, err := dec.Process(nil, true)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if len(out) != 0 || len(remainder) != 0 {
		t.Fatalf("expected nothing for empty input, got out=%v remainder=%v", out, remainder)
	}
}
