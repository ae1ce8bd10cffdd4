package stats

import "github.com/san-kum/sortviz/internal/trace"

// Counts tallies completed operations by kind.
type Counts struct {
	Comparisons int
	Swaps       int
	SelfSwaps   int
	Writes      int
	Marks       int
	Settles     int
}

func (c *Counts) Observe(op trace.Op) {
	switch op.Kind {
	case trace.Compare:
		c.Comparisons++
	case trace.Swap:
		c.Swaps++
		if op.I == op.J {
			c.SelfSwaps++
		}
	case trace.Write:
		c.Writes++
	case trace.Mark:
		c.Marks++
	case trace.Settle:
		c.Settles++
	}
}

func (c *Counts) Reset() { *c = Counts{} }

// Moves is the number of mutating operations (swaps plus writes).
func (c Counts) Moves() int { return c.Swaps + c.Writes }

// FromTrace tallies a whole trace.
func FromTrace(tr *trace.Trace) Counts {
	var c Counts
	for _, op := range tr.Ops() {
		c.Observe(op)
	}
	return c
}

// Inversions counts out-of-order pairs, the usual disorder measure.
func Inversions(values []int) int {
	inv := 0
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				inv++
			}
		}
	}
	return inv
}

// InversionCurve replays the trace and samples the inversion count after
// each mutating operation. Index 0 is the initial disorder.
func InversionCurve(tr *trace.Trace) []float64 {
	values := tr.Initial()
	curve := []float64{float64(Inversions(values))}
	for _, op := range tr.Ops() {
		if op.Kind != trace.Swap && op.Kind != trace.Write {
			continue
		}
		trace.Apply(values, op)
		curve = append(curve, float64(Inversions(values)))
	}
	return curve
}
