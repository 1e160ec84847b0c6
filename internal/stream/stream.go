// Package stream implements an incremental, chunk-oriented processing
// pipeline for byte and text streams.
//
// A Pipeline routes each incoming chunk through an ordered list of
// Processors. A processor transforms a batch of input units into output
// units, and may hand back a remainder: input it could not process yet
// because the interesting data (a multi-byte character, an unterminated
// line, a pattern straddling a chunk boundary) is split across chunks.
// The pipeline stores each processor's remainder and re-presents it
// together with the next batch, so processors themselves stay simple
// functions of (input, final) with no hidden state.
//
// All components are synchronous and CPU-bound. A Pipeline instance must
// not be used from multiple goroutines concurrently; independent
// instances are independent.
package stream

import (
	"errors"
	"fmt"
)

// Unit is a single element flowing through a pipeline: a []byte chunk, a
// decoded string, or a processor-specific value such as a json-line
// Result. Processors document which kinds they accept and produce.
type Unit = any

// Processor is one transformation step in a pipeline.
//
// Process receives the pending input units (any stored remainder from the
// previous round followed by the new data) and returns fully-processed
// output units plus the unconsumed remainder to hold for the next round.
// When final is true no further input will arrive and the processor must
// consume everything, using its end-of-stream rules; a well-behaved
// processor returns an empty remainder in that case.
//
// Running out of data mid-item is not an error: it is what the remainder
// is for. Errors are reserved for genuine defects.
type Processor interface {
	Process(in []Unit, final bool) (out []Unit, remainder []Unit, err error)
}

// InvalidStateError reports a pipeline used after it was finalized. This
// is a programmer error, not a data error; it is never retried.
type InvalidStateError struct {
	Op string // The operation that was attempted
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("pipeline already finalized: cannot %s", e.Op)
}

// IsInvalidStateError checks if the error is or wraps an InvalidStateError.
func IsInvalidStateError(err error) bool {
	if err == nil {
		return false
	}
	var ise *InvalidStateError
	return errors.As(err, &ise)
}

// DecodeError reports a decode processor that could not be constructed or
// was fed units it cannot interpret.
type DecodeError struct {
	Encoding string // The encoding name involved
	Reason   string // Human-readable description of the problem
}

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode (%s): %s", e.Encoding, e.Reason)
}

// IsDecodeError checks if the error is or wraps a DecodeError.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var de *DecodeError
	return errors.As(err, &de)
}
