package blackboard

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"
)

// TestBehavioral_ChainPropagation tests that a value change walks a derived
// chain end to end within one pass.
func TestBehavioral_ChainPropagation(t *testing.T) {
	b := New()

	a, err := NewField(b, "a", 1)
	if err != nil {
		t.Fatalf("Failed to create field: %v", err)
	}

	double, err := Derive1(b, "double", a, func(v int) (int, error) {
		return v * 2, nil
	})
	if err != nil {
		t.Fatalf("Failed to derive double: %v", err)
	}

	plusTen, err := Derive1(b, "plus_ten", double, func(v int) (int, error) {
		return v + 10, nil
	})
	if err != nil {
		t.Fatalf("Failed to derive plus_ten: %v", err)
	}

	if got := plusTen.Get(); got != 12 {
		t.Errorf("Expected initial 12, got %d", got)
	}

	if err := a.Set(5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := double.Get(); got != 10 {
		t.Errorf("Expected double=10, got %d", got)
	}
	if got := plusTen.Get(); got != 20 {
		t.Errorf("Expected plus_ten=20, got %d", got)
	}
}

// TestBehavioral_ConsistencyUnderRandomizedSets verifies that after every set
// the derived values agree with their dependencies, whatever order the
// primitives are written in.
func TestBehavioral_ConsistencyUnderRandomizedSets(t *testing.T) {
	b := New()

	x, _ := NewField(b, "x", 0)
	y, _ := NewField(b, "y", 0)
	z, _ := NewField(b, "z", 0)

	sumXY, err := Derive2(b, "sum_xy", x, y, sum2)
	if err != nil {
		t.Fatalf("Failed to derive sum_xy: %v", err)
	}
	total, err := Derive2(b, "total", sumXY, z, sum2)
	if err != nil {
		t.Fatalf("Failed to derive total: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	roots := []*Field[int]{x, y, z}
	for i := 0; i < 200; i++ {
		f := roots[rng.Intn(len(roots))]
		if err := f.Set(rng.Intn(1000)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		wantSum := x.Get() + y.Get()
		if got := sumXY.Get(); got != wantSum {
			t.Fatalf("Iteration %d: sum_xy=%d, want %d", i, got, wantSum)
		}
		if got := total.Get(); got != wantSum+z.Get() {
			t.Fatalf("Iteration %d: total=%d, want %d", i, got, wantSum+z.Get())
		}
	}
}

// TestBehavioral_ConcurrentSettersAndReaders hammers one board from several
// goroutines. Readers must never observe a derived value inconsistent with
// the snapshot it came from.
func TestBehavioral_ConcurrentSettersAndReaders(t *testing.T) {
	b := New()

	x, _ := NewField(b, "x", 0)
	y, _ := NewField(b, "y", 0)
	if _, err := Derive2(b, "sum", x, y, sum2); err != nil {
		t.Fatalf("Failed to derive sum: %v", err)
	}

	const setters = 4
	const setsEach = 100

	var wg sync.WaitGroup
	for i := 0; i < setters; i++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(seed)))
			for j := 0; j < setsEach; j++ {
				if seed%2 == 0 {
					_ = x.Set(rng.Intn(100))
				} else {
					_ = y.Set(rng.Intn(100))
				}
			}
		}(i)
	}

	stop := make(chan struct{})
	var readerWg sync.WaitGroup
	for i := 0; i < 2; i++ {
		readerWg.Add(1)
		go func() {
			defer readerWg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := b.Snapshot()
				want := snap["x"].(int) + snap["y"].(int)
				if got := snap["sum"].(int); got != want {
					t.Errorf("Inconsistent snapshot: sum=%d, x+y=%d", got, want)
					return
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	readerWg.Wait()

	if got := b.Snapshot(); got["sum"].(int) != got["x"].(int)+got["y"].(int) {
		t.Errorf("Final snapshot inconsistent: %v", got)
	}
}

// TestBehavioral_WaitersDuringConcurrentWrites starts waiters at several
// thresholds while setters ramp a counter up; every waiter must resolve with
// a value satisfying its own predicate.
func TestBehavioral_WaitersDuringConcurrentWrites(t *testing.T) {
	b := New()

	counter, _ := NewField(b, "counter", 0)
	squared, err := Derive1(b, "squared", counter, func(v int) (int, error) {
		return v * v, nil
	})
	if err != nil {
		t.Fatalf("Failed to derive squared: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	thresholds := []int{5, 25, 60, 99}
	var wg sync.WaitGroup
	for _, threshold := range thresholds {
		wg.Add(1)
		go func(min int) {
			defer wg.Done()
			v, err := counter.WaitUntil(ctx, func(v int) bool { return v >= min })
			if err != nil {
				t.Errorf("Waiter at %d failed: %v", min, err)
				return
			}
			if v < min {
				t.Errorf("Waiter at %d resolved with %d", min, v)
			}
		}(threshold)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := squared.WaitUntil(ctx, func(v int) bool { return v >= 100*100 })
		if err != nil {
			t.Errorf("Derived waiter failed: %v", err)
			return
		}
		if v < 100*100 {
			t.Errorf("Derived waiter resolved with %d", v)
		}
	}()

	for i := 1; i <= 100; i++ {
		if err := counter.Set(i); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	wg.Wait()
}
