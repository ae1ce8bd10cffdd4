package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Insertion records the adjacent-swap variant of insertion sort: each
// element bubbles left through the sorted prefix one swap at a time. The
// "i" marker tracks the element currently being inserted. Nothing settles
// until the end because prefix positions keep moving.
func Insertion(b *trace.Builder) {
	n := b.Len()
	if n == 0 {
		return
	}
	for i := 1; i < n; i++ {
		b.Mark("i", i)
		for j := i; j > 0 && b.Cmp(j-1, j) > 0; j-- {
			b.Swap(j-1, j)
		}
	}
	b.Settle(0, n-1)
}
