package stats

import (
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func TestObserve(t *testing.T) {
	var c Counts
	ops := []trace.Op{
		{Kind: trace.Compare, I: 0, J: 1},
		{Kind: trace.Compare, I: 1, J: 2},
		{Kind: trace.Swap, I: 0, J: 1},
		{Kind: trace.Swap, I: 2, J: 2},
		{Kind: trace.Write, I: 1, Value: 5},
		{Kind: trace.Mark, Label: "i", I: 0},
		{Kind: trace.Settle, Lo: 0, Hi: 2},
	}
	for _, op := range ops {
		c.Observe(op)
	}

	if c.Comparisons != 2 {
		t.Errorf("Comparisons = %d, want 2", c.Comparisons)
	}
	if c.Swaps != 2 {
		t.Errorf("Swaps = %d, want 2", c.Swaps)
	}
	if c.SelfSwaps != 1 {
		t.Errorf("SelfSwaps = %d, want 1", c.SelfSwaps)
	}
	if c.Writes != 1 {
		t.Errorf("Writes = %d, want 1", c.Writes)
	}
	if c.Marks != 1 {
		t.Errorf("Marks = %d, want 1", c.Marks)
	}
	if c.Settles != 1 {
		t.Errorf("Settles = %d, want 1", c.Settles)
	}
	if c.Moves() != 3 {
		t.Errorf("Moves = %d, want 3", c.Moves())
	}

	c.Reset()
	if c != (Counts{}) {
		t.Errorf("after Reset = %+v, want zero", c)
	}
}

func TestFromTrace(t *testing.T) {
	b := trace.NewBuilder([]int{3, 1, 2})
	b.Cmp(0, 1)
	b.Swap(0, 1)
	b.Write(2, 7)
	b.Settle(0, 2)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	c := FromTrace(tr)
	if c.Comparisons != 1 || c.Swaps != 1 || c.Writes != 1 || c.Settles != 1 {
		t.Fatalf("FromTrace = %+v", c)
	}
}

func TestInversions(t *testing.T) {
	tests := []struct {
		values []int
		want   int
	}{
		{nil, 0},
		{[]int{1}, 0},
		{[]int{1, 2, 3}, 0},
		{[]int{3, 2, 1}, 3},
		{[]int{2, 1, 3}, 1},
		{[]int{2, 2, 1}, 2},
	}
	for _, tt := range tests {
		if got := Inversions(tt.values); got != tt.want {
			t.Errorf("Inversions(%v) = %d, want %d", tt.values, got, tt.want)
		}
	}
}

func TestInversionCurve(t *testing.T) {
	b := trace.NewBuilder([]int{3, 1, 2})
	b.Cmp(0, 1)
	b.Swap(0, 1) // [1 3 2]
	b.Cmp(1, 2)
	b.Swap(1, 2) // [1 2 3]
	b.Settle(0, 2)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	curve := InversionCurve(tr)
	want := []float64{2, 1, 0}
	if len(curve) != len(want) {
		t.Fatalf("curve = %v, want %v", curve, want)
	}
	for i := range want {
		if curve[i] != want[i] {
			t.Fatalf("curve = %v, want %v", curve, want)
		}
	}
}

func TestInversionCurveEndsAtZeroForSortingTrace(t *testing.T) {
	b := trace.NewBuilder([]int{5, 4, 3, 2, 1})
	// Bubble-style adjacent swaps down to sorted.
	for end := 4; end > 0; end-- {
		for i := 0; i < end; i++ {
			if b.Cmp(i, i+1) > 0 {
				b.Swap(i, i+1)
			}
		}
	}
	b.Settle(0, 4)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	curve := InversionCurve(tr)
	if curve[0] != 10 {
		t.Fatalf("initial inversions = %f, want 10", curve[0])
	}
	if curve[len(curve)-1] != 0 {
		t.Fatalf("final inversions = %f, want 0", curve[len(curve)-1])
	}
	// Each adjacent swap removes exactly one inversion.
	for i := 1; i < len(curve); i++ {
		if curve[i-1]-curve[i] != 1 {
			t.Fatalf("curve step %d: %f -> %f, want decrement of 1", i, curve[i-1], curve[i])
		}
	}
}
