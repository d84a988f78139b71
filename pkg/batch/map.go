package batch

import (
	"iter"

	"github.com/lkraemer/flowgraph/pkg/errors"
)

// Map applies op to every element of seq and returns a lazy sequence of
// results in input order.
//
// With a nil executor, each op call runs inline when the consumer reaches
// that element. With an executor and chunk > 0, up to chunk inputs are
// submitted concurrently and their results drained in submission order
// before the next chunk is read, capping in-flight memory at one chunk.
// With an executor and chunk <= 0, the entire input is submitted eagerly
// and drained in order.
//
// The returned sequence is single-pass. A failing element yields its error
// at that element's position; earlier results are unaffected and iteration
// may continue past the failure.
func Map[In, Out any](op func(In) (Out, error), seq iter.Seq[In], ex Executor, chunk int) iter.Seq2[Out, error] {
	if ex == nil {
		return func(yield func(Out, error) bool) {
			for in := range seq {
				if !yield(op(in)) {
					return
				}
			}
		}
	}

	return func(yield func(Out, error) bool) {
		var pending []Future

		flush := func() bool {
			for _, fut := range pending {
				v, err := fut.Result()
				var out Out
				if err == nil {
					var ok bool
					if out, ok = v.(Out); !ok {
						err = errors.New(errors.ErrCodeInternal, "executor returned %T", v)
					}
				}
				if !yield(out, err) {
					return false
				}
			}
			pending = pending[:0]
			return true
		}

		for in := range seq {
			pending = append(pending, ex.Submit(task(op, in)))
			if chunk > 0 && len(pending) >= chunk {
				if !flush() {
					return
				}
			}
		}
		flush()
	}
}

// MapSlice is a convenience wrapper over [Map] for in-memory inputs.
func MapSlice[In, Out any](op func(In) (Out, error), inputs []In, ex Executor, chunk int) iter.Seq2[Out, error] {
	return Map(op, func(yield func(In) bool) {
		for _, in := range inputs {
			if !yield(in) {
				return
			}
		}
	}, ex, chunk)
}

// Collect drains a result sequence into a slice, stopping at the first
// error. Partial results produced before the failure are returned alongside
// the error.
func Collect[Out any](seq iter.Seq2[Out, error]) ([]Out, error) {
	var out []Out
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// task adapts a typed operation to the untyped Task shape.
func task[In, Out any](op func(In) (Out, error), in In) Task {
	return func() (any, error) {
		return op(in)
	}
}
