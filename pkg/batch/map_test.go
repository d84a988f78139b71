package batch

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func double(n int) (int, error) {
	return n * 2, nil
}

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestMapInline(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			got, err := Collect(MapSlice(double, ints(n), nil, 0))
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			if len(got) != n {
				t.Fatalf("got %d results, want %d", len(got), n)
			}
			for i, v := range got {
				if v != i*2 {
					t.Errorf("result[%d] = %d, want %d", i, v, i*2)
				}
			}
		})
	}
}

func TestMapInlineIsLazy(t *testing.T) {
	var calls atomic.Int64
	op := func(n int) (int, error) {
		calls.Add(1)
		return n, nil
	}

	seq := MapSlice(op, ints(10), nil, 0)
	if calls.Load() != 0 {
		t.Fatalf("op ran %d times before iteration", calls.Load())
	}

	for range seq {
		break
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("op ran %d times after one element, want 1", got)
	}
}

func TestMapPoolPreservesOrder(t *testing.T) {
	// Later inputs finish first; results must still come back in input
	// order.
	op := func(n int) (string, error) {
		time.Sleep(time.Duration(20-n) * time.Millisecond)
		return strconv.Itoa(n), nil
	}

	pool := NewPool(4)
	defer pool.Close()

	for _, chunk := range []int{1, 2, 5, 0} {
		t.Run(fmt.Sprintf("chunk=%d", chunk), func(t *testing.T) {
			got, err := Collect(MapSlice(op, ints(5), pool, chunk))
			if err != nil {
				t.Fatalf("Collect() error = %v", err)
			}
			for i, v := range got {
				if v != strconv.Itoa(i) {
					t.Errorf("result[%d] = %q, want %q", i, v, strconv.Itoa(i))
				}
			}
		})
	}
}

func TestMapErrorPosition(t *testing.T) {
	boom := fmt.Errorf("boom")
	op := func(n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	}

	pool := NewPool(2)
	defer pool.Close()

	tests := []struct {
		name string
		ex   Executor
	}{
		{name: "inline", ex: nil},
		{name: "pool", ex: pool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values []int
			var errs []error
			for v, err := range MapSlice(op, ints(5), tt.ex, 2) {
				values = append(values, v)
				errs = append(errs, err)
			}

			if len(values) != 5 {
				t.Fatalf("got %d results, want 5", len(values))
			}
			for i, err := range errs {
				if i == 2 {
					if err != boom {
						t.Errorf("errs[2] = %v, want %v", err, boom)
					}
					continue
				}
				if err != nil {
					t.Errorf("errs[%d] = %v, want nil", i, err)
				}
				if values[i] != i {
					t.Errorf("values[%d] = %d, want %d", i, values[i], i)
				}
			}
		})
	}
}

func TestMapEarlyStop(t *testing.T) {
	var calls atomic.Int64
	op := func(n int) (int, error) {
		calls.Add(1)
		return n, nil
	}

	pool := NewPool(2)
	defer pool.Close()

	// chunk = 2 means only the first chunk is submitted before the
	// consumer stops.
	seen := 0
	for range MapSlice(op, ints(100), pool, 2) {
		seen++
		if seen == 2 {
			break
		}
	}

	// Give any stray submissions a moment to run.
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got > 4 {
		t.Errorf("op ran %d times after early stop, want at most 4", got)
	}
}

func TestCollectStopsAtError(t *testing.T) {
	boom := fmt.Errorf("boom")
	op := func(n int) (int, error) {
		if n == 3 {
			return 0, boom
		}
		return n, nil
	}

	got, err := Collect(MapSlice(op, ints(6), nil, 0))
	if err != boom {
		t.Fatalf("Collect() error = %v, want %v", err, boom)
	}
	if len(got) != 3 {
		t.Errorf("got %d partial results, want 3", len(got))
	}
}
