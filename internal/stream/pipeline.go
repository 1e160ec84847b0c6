package stream

import (
	"iter"
)

// Pipeline chains processors and buffers their remainders between rounds.
//
// The zero Pipeline is not usable; construct one with NewPipeline. A
// Pipeline is single-use: after Finalize it only returns
// InvalidStateError. Calls on one instance must be serialized by the
// caller; remainder state is mutated per call.
type Pipeline struct {
	procs      []Processor
	remainders [][]Unit
	finalized  bool
}

// NewPipeline builds a pipeline that applies the given processors in
// order. A pipeline without processors passes chunks through unchanged.
func NewPipeline(procs ...Processor) *Pipeline {
	return &Pipeline{
		procs:      append([]Processor(nil), procs...),
		remainders: make([][]Unit, len(procs)),
	}
}

// Process routes one chunk through the processor chain and returns the
// fully-processed output units, if any.
//
// Each processor is handed its stored remainder followed by the current
// round's data. If a processor produces no output this round, the chain
// stops early: there is nothing new to hand downstream, and downstream
// remainders stay untouched until a later round produces something.
func (p *Pipeline) Process(chunk Unit) ([]Unit, error) {
	if p.finalized {
		return nil, &InvalidStateError{Op: "process"}
	}

	input := []Unit{chunk}
	for i, proc := range p.procs {
		input = prepend(p.remainders[i], input)
		out, remainder, err := proc.Process(input, false)
		if err != nil {
			return nil, err
		}
		p.remainders[i] = remainder
		if len(out) == 0 {
			return nil, nil
		}
		input = out
	}
	return input, nil
}

// Finalize flushes the pipeline after the input source is exhausted and
// returns the remaining output. It must be called exactly once; a second
// call fails with InvalidStateError.
//
// Every processor with pending data is invoked one last time with
// final=true so it can apply its end-of-stream rules (emit an
// unterminated trailing line, escape an undecodable tail, and so on).
// A processor with no prior output and no stored remainder has truly
// nothing to flush and is skipped.
func (p *Pipeline) Finalize() ([]Unit, error) {
	if p.finalized {
		return nil, &InvalidStateError{Op: "finalize"}
	}
	p.finalized = true

	var output []Unit
	for i, proc := range p.procs {
		input := prepend(p.remainders[i], output)
		p.remainders[i] = nil
		if len(input) == 0 {
			output = nil
			continue
		}
		out, _, err := proc.Process(input, true)
		if err != nil {
			return nil, err
		}
		output = out
	}
	return output, nil
}

// ProcessFrom drains the chunk sequence through the pipeline lazily,
// yielding output units as they become available, and finalizes once the
// source is exhausted. The yielded sequence is finite iff the source is;
// it is not restartable, since it drives this pipeline's state.
func (p *Pipeline) ProcessFrom(chunks iter.Seq[Unit]) iter.Seq2[Unit, error] {
	return func(yield func(Unit, error) bool) {
		for chunk := range chunks {
			out, err := p.Process(chunk)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, unit := range out {
				if !yield(unit, nil) {
					return
				}
			}
		}

		out, err := p.Finalize()
		if err != nil {
			yield(nil, err)
			return
		}
		for _, unit := range out {
			if !yield(unit, nil) {
				return
			}
		}
	}
}

// prepend joins a stored remainder and fresh input without aliasing
// either slice.
func prepend(remainder, input []Unit) []Unit {
	if len(remainder) == 0 {
		return input
	}
	joined := make([]Unit, 0, len(remainder)+len(input))
	joined = append(joined, remainder...)
	return append(joined, input...)
}
