package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Merge records a top-down merge sort. Halves are buffered before the merge
// writes back, so decisions read the buffers while each recorded Compare
// points at the positions the candidate values came from. Write-backs are
// Write operations carrying the stored value. Only the final full-range
// merge settles: positions keep moving until then.
func Merge(b *trace.Builder) {
	n := b.Len()
	if n == 0 {
		return
	}
	if n == 1 {
		b.Settle(0, 0)
		return
	}
	mergeRange(b, 0, n-1, n)
}

func mergeRange(b *trace.Builder, lo, hi, n int) {
	if lo >= hi {
		return
	}
	mid := lo + (hi-lo)/2
	mergeRange(b, lo, mid, n)
	mergeRange(b, mid+1, hi, n)

	b.Mark("lo", lo)
	b.Mark("mid", mid)
	b.Mark("hi", hi)

	left := make([]int, mid-lo+1)
	for i := range left {
		left[i] = b.At(lo + i)
	}
	right := make([]int, hi-mid)
	for i := range right {
		right[i] = b.At(mid + 1 + i)
	}

	li, ri := 0, 0
	for k := lo; k <= hi; k++ {
		switch {
		case li >= len(left):
			b.Write(k, right[ri])
			ri++
		case ri >= len(right):
			b.Write(k, left[li])
			li++
		default:
			b.Compare(lo+li, mid+1+ri)
			if left[li] <= right[ri] {
				b.Write(k, left[li])
				li++
			} else {
				b.Write(k, right[ri])
				ri++
			}
		}
	}

	if lo == 0 && hi == n-1 {
		b.Settle(lo, hi)
	}
}
