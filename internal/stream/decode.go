package stream

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Decoder converts byte units into text units using a named encoding.
//
// Each round the pending bytes are joined and decoded as a whole: either
// the complete buffer decodes and one string unit is emitted, or nothing
// is emitted and the entire input is held as remainder, because the bytes
// that complete a multi-byte sequence may still be on their way. At end
// of stream an undecodable tail is not an error: offending bytes are
// escaped as \xHH so that no data is silently dropped.
//
// UTF-8 (the default) is validated natively. Any other IANA encoding
// name is resolved through the x/text registry.
type Decoder struct {
	name string
	enc  encoding.Encoding // nil for the native UTF-8 path
}

// NewDecoder creates a Decoder for the named text encoding. An empty
// name selects UTF-8. Unknown names fail with DecodeError.
func NewDecoder(name string) (*Decoder, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" || normalized == "utf-8" || normalized == "utf8" {
		return &Decoder{name: "utf-8"}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, &DecodeError{Encoding: name, Reason: "unknown encoding"}
	}
	return &Decoder{name: normalized, enc: enc}, nil
}

// Name returns the normalized encoding name.
func (d *Decoder) Name() string {
	return d.name
}

// Process implements the Processor interface for Decoder. Input units
// must be []byte (string units are tolerated and treated as raw bytes).
func (d *Decoder) Process(in []Unit, final bool) ([]Unit, []Unit, error) {
	joined, err := joinBytes(in)
	if err != nil {
		return nil, nil, &DecodeError{Encoding: d.name, Reason: err.Error()}
	}
	if len(joined) == 0 {
		return nil, nil, nil
	}

	if text, ok := d.decodeStrict(joined, final); ok {
		return []Unit{text}, nil, nil
	}
	if !final {
		// More bytes may complete the encoding; re-present everything
		// next round.
		return nil, in, nil
	}
	return []Unit{d.decodeLossy(joined)}, nil, nil
}

// decodeStrict decodes the whole buffer, reporting failure instead of
// substituting anything for bad input.
//
// The x/text decoders do not fail on a truncated trailing sequence when
// told the input is complete: they emit U+FFFD and report success. Two
// measures keep the decode strict. The transformer is driven with
// atEOF=final, so with more input pending a truncated tail surfaces as
// ErrShortSrc instead of being substituted. And any U+FFFD in the output
// is treated as failure, since these decoders also substitute for
// unmappable mid-stream bytes without raising an error. A legitimately
// encoded U+FFFD is indistinguishable from a substitution and is
// rejected too; the end-of-stream fallback then escapes its bytes.
func (d *Decoder) decodeStrict(src []byte, final bool) (string, bool) {
	if d.enc == nil {
		if !utf8.Valid(src) {
			return "", false
		}
		return string(src), true
	}

	dec := d.enc.NewDecoder()
	out := make([]byte, 0, len(src)*utf8.UTFMax)
	dst := make([]byte, len(src)*utf8.UTFMax+16)
	rem := src
	for {
		nDst, nSrc, err := dec.Transform(dst, rem, final)
		out = append(out, dst[:nDst]...)
		rem = rem[nSrc:]
		switch err {
		case nil:
			if strings.ContainsRune(string(out), utf8.RuneError) {
				return "", false
			}
			return string(out), true
		case transform.ErrShortDst:
			continue
		default:
			// ErrShortSrc (incomplete trailing sequence) or a real
			// decode error; either way the buffer is not cleanly
			// decodable yet.
			return "", false
		}
	}
}

// decodeLossy decodes as much as possible, replacing each byte of an
// undecodable sequence with its \xHH escape. Used only at end of stream.
func (d *Decoder) decodeLossy(src []byte) string {
	if d.enc == nil {
		return escapeInvalidUTF8(src)
	}

	// Emit the longest cleanly-decodable prefix, escape one byte, repeat.
	// End-of-stream tails are small, so the rescanning does not matter.
	var sb strings.Builder
	for len(src) > 0 {
		n := len(src)
		for n > 0 {
			if text, ok := d.decodeStrict(src[:n], true); ok {
				sb.WriteString(text)
				break
			}
			n--
		}
		if n == 0 {
			fmt.Fprintf(&sb, `\x%02x`, src[0])
			src = src[1:]
			continue
		}
		src = src[n:]
	}
	return sb.String()
}

// escapeInvalidUTF8 copies valid UTF-8 runs through and escapes every
// invalid byte as \xHH.
func escapeInvalidUTF8(src []byte) string {
	var sb strings.Builder
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&sb, `\x%02x`, src[0])
			src = src[1:]
			continue
		}
		sb.Write(src[:size])
		src = src[size:]
	}
	return sb.String()
}

// joinBytes concatenates byte and string units into one buffer.
func joinBytes(in []Unit) ([]byte, error) {
	var buf []byte
	for _, unit := range in {
		switch v := unit.(type) {
		case []byte:
			buf = append(buf, v...)
		case string:
			buf = append(buf, v...)
		default:
			return nil, fmt.Errorf("unsupported unit type %T", unit)
		}
	}
	return buf, nil
}
