package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Quicksort records a Lomuto-partition quicksort with the last element as
// pivot. The partition keeps the scan stable: an element smaller than the
// pivot is rotated left into the boundary with adjacent swaps, which
// preserves the relative order of the greater-than region. The pivot
// placement is a single direct swap so playback can emphasize it. "i" and
// "j" markers move on every scanner advance, not only on swaps.
func Quicksort(b *trace.Builder) {
	n := b.Len()
	if n == 0 {
		return
	}
	quicksortRange(b, 0, n-1)
}

func quicksortRange(b *trace.Builder, lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		b.Settle(lo, lo)
		return
	}
	b.Mark("lo", lo)
	b.Mark("hi", hi)
	b.Mark("pivot", hi)

	// i is the first position of the greater-than region.
	i := lo
	b.Mark("i", i)
	for j := lo; j < hi; j++ {
		b.Mark("j", j)
		if b.Cmp(j, hi) < 0 {
			for k := j; k > i; k-- {
				b.Swap(k-1, k)
			}
			i++
			b.Mark("i", i)
		}
	}
	b.Swap(i, hi)
	b.Settle(i, i)

	quicksortRange(b, lo, i-1)
	quicksortRange(b, i+1, hi)
}
