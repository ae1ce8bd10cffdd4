package algorithms

import "github.com/san-kum/sortviz/internal/trace"

// Selection records selection sort. The running minimum carries a "min"
// boundary marker and the "j" marker follows the scanner, so a renderer can
// show the scan. The placing swap is emitted even when the minimum is
// already in place (self-swap), keeping one swap per pass.
func Selection(b *trace.Builder) {
	n := b.Len()
	for i := 0; i < n; i++ {
		min := i
		b.Mark("min", min)
		for j := i + 1; j < n; j++ {
			b.Mark("j", j)
			if b.Cmp(min, j) > 0 {
				min = j
				b.Mark("min", min)
			}
		}
		b.Swap(i, min)
		b.Settle(i, i)
	}
}
