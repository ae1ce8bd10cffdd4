package algorithms

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/san-kum/sortviz/internal/trace"
)

func sortsCorrectly(t *testing.T, name string, values []int) {
	t.Helper()
	r := NewRegistry()
	tr, _, err := r.Record(name, values)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}

	want := make([]int, len(values))
	copy(want, values)
	sort.Ints(want)

	got := tr.Replay()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d values, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s(%v): replay = %v, want %v", name, values, got, want)
		}
	}
}

func TestAllAlgorithmsSort(t *testing.T) {
	inputs := [][]int{
		{},
		{7},
		{2, 1},
		{3, 1, 2},
		{1, 2, 3, 4, 5},
		{5, 4, 3, 2, 1},
		{4, 4, 1, 4, 2, 2},
		{8, 2, 9, 1, 5, 3, 7},
	}
	r := NewRegistry()
	for _, name := range r.List() {
		for _, in := range inputs {
			sortsCorrectly(t, name, in)
		}
	}
}

func TestAllAlgorithmsSortRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := NewRegistry()
	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(40)
		values := make([]int, n)
		for i := range values {
			values[i] = rng.Intn(100)
		}
		for _, name := range r.List() {
			sortsCorrectly(t, name, values)
		}
	}
}

func TestSettleCoversEveryPosition(t *testing.T) {
	values := []int{6, 3, 9, 1, 4, 8, 2}
	r := NewRegistry()
	for _, name := range r.List() {
		tr, _, err := r.Record(name, values)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		settled := make([]bool, len(values))
		for _, op := range tr.Ops() {
			if op.Kind == trace.Settle {
				for p := op.Lo; p <= op.Hi; p++ {
					settled[p] = true
				}
			}
		}
		for p, ok := range settled {
			if !ok {
				t.Errorf("%s: position %d never settled", name, p)
			}
		}
	}
}

// The three-element inversion case pins down the compare/swap interleaving:
// a swap follows immediately after the compare that found the inversion, and
// compares always name the lower index first.
func TestBubbleOpSequence(t *testing.T) {
	b := trace.NewBuilder([]int{3, 1, 2})
	Bubble(b)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	want := []trace.Op{
		{Kind: trace.Compare, I: 0, J: 1},
		{Kind: trace.Swap, I: 0, J: 1},
		{Kind: trace.Compare, I: 1, J: 2},
		{Kind: trace.Swap, I: 1, J: 2},
		{Kind: trace.Settle, Lo: 2, Hi: 2},
		{Kind: trace.Compare, I: 0, J: 1},
		{Kind: trace.Settle, Lo: 1, Hi: 1},
		{Kind: trace.Settle, Lo: 0, Hi: 0},
	}
	if tr.Len() != len(want) {
		t.Fatalf("got %d ops, want %d: %v", tr.Len(), len(want), tr.Ops())
	}
	for i, w := range want {
		if got := tr.At(i); got != w {
			t.Errorf("op %d = %v, want %v", i, got, w)
		}
	}
}

// First partition of [8 2 9 1 5 3 7]: smaller elements rotate left through
// adjacent swaps, the pivot placement is one direct swap, and the pivot
// settles at index 4 leaving [2 1 5 3 7 9 8].
func TestQuicksortFirstPartition(t *testing.T) {
	values := []int{8, 2, 9, 1, 5, 3, 7}
	b := trace.NewBuilder(values)
	Quicksort(b)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	ops := tr.Ops()
	firstSettle := -1
	for i, op := range ops {
		if op.Kind == trace.Settle {
			firstSettle = i
			break
		}
	}
	if firstSettle == -1 {
		t.Fatal("no settle recorded")
	}
	if op := ops[firstSettle]; op.Lo != 4 || op.Hi != 4 {
		t.Fatalf("first settle = %v, want settle(4..4)", op)
	}

	// Pivot placement is the swap immediately before the settle, and it
	// reaches across the partition rather than being adjacent.
	placement := ops[firstSettle-1]
	if placement.Kind != trace.Swap || placement.I != 4 || placement.J != 6 {
		t.Fatalf("pivot placement = %v, want swap(4,6)", placement)
	}

	state := make([]int, len(values))
	copy(state, values)
	for _, op := range ops[:firstSettle+1] {
		trace.Apply(state, op)
	}
	want := []int{2, 1, 5, 3, 7, 9, 8}
	for i := range want {
		if state[i] != want[i] {
			t.Fatalf("after first partition: %v, want %v", state, want)
		}
	}

	// All swaps before the placement are adjacent rotations.
	for i, op := range ops[:firstSettle-1] {
		if op.Kind == trace.Swap && op.J-op.I != 1 {
			t.Errorf("op %d: partition swap %v is not adjacent", i, op)
		}
	}
}

func TestSelectionEmitsSelfSwap(t *testing.T) {
	b := trace.NewBuilder([]int{1, 2, 3})
	Selection(b)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	selfSwaps := 0
	for _, op := range tr.Ops() {
		if op.Kind == trace.Swap && op.I == op.J {
			selfSwaps++
		}
	}
	// Already-sorted input: every pass places the minimum where it sits.
	if selfSwaps != 3 {
		t.Fatalf("self swaps = %d, want 3", selfSwaps)
	}
}

func TestMergeMutatesOnlyByWrites(t *testing.T) {
	b := trace.NewBuilder([]int{5, 2, 8, 1})
	Merge(b)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	writes := 0
	for _, op := range tr.Ops() {
		switch op.Kind {
		case trace.Swap:
			t.Fatalf("merge emitted a swap: %v", op)
		case trace.Write:
			writes++
		}
	}
	if writes == 0 {
		t.Fatal("merge emitted no writes")
	}
}

func TestInsertionSwapsAreAdjacent(t *testing.T) {
	b := trace.NewBuilder([]int{4, 3, 2, 1})
	Insertion(b)
	tr, _, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	for i, op := range tr.Ops() {
		if op.Kind == trace.Swap && op.J-op.I != 1 {
			t.Errorf("op %d: swap %v is not adjacent", i, op)
		}
	}
}

func TestRegistryUnknownAlgorithm(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Get("bogo"); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
	if _, _, err := r.Record("bogo", []int{1}); err == nil {
		t.Fatal("expected error for unknown algorithm")
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	names := NewRegistry().List()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("List() not sorted: %v", names)
	}
	if len(names) != 5 {
		t.Fatalf("got %d algorithms, want 5", len(names))
	}
}
