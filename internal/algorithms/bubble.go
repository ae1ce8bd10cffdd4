package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Bubble records a classic bubble sort: adjacent compares, swap on
// inversion, last unsorted position settles after every pass.
func Bubble(b *trace.Builder) {
	n := b.Len()
	if n == 0 {
		return
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n-1-i; j++ {
			if b.Cmp(j, j+1) > 0 {
				b.Swap(j, j+1)
			}
		}
		b.Settle(n-1-i, n-1-i)
	}
}
