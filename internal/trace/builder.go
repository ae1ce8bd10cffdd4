package trace

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Builder records operations while keeping a working copy of the array in
// sync, so adapters read post-swap values through it. The first contract
// violation makes the builder sticky: further records are dropped and
// Finalize returns the error.
type Builder struct {
	ops       []Op
	work      []int
	initial   []int
	settled   mapset.Set[int]
	finalized bool
	err       error
}

func NewBuilder(values []int) *Builder {
	initial := make([]int, len(values))
	copy(initial, values)
	work := make([]int, len(values))
	copy(work, values)
	return &Builder{
		ops:     make([]Op, 0, len(values)*len(values)),
		work:    work,
		initial: initial,
		settled: mapset.NewThreadUnsafeSet[int](),
	}
}

func (b *Builder) Len() int { return len(b.work) }

// At reads the working copy without recording anything.
func (b *Builder) At(i int) int {
	if i < 0 || i >= len(b.work) {
		return 0
	}
	return b.work[i]
}

// Cmp records Compare(i,j) and returns -1, 0 or 1 as work[i] is less than,
// equal to, or greater than work[j].
func (b *Builder) Cmp(i, j int) int {
	if !b.check(Op{Kind: Compare, I: i, J: j}, i, j) {
		return 0
	}
	b.ops = append(b.ops, Op{Kind: Compare, I: i, J: j})
	switch {
	case b.work[i] < b.work[j]:
		return -1
	case b.work[i] > b.work[j]:
		return 1
	default:
		return 0
	}
}

// Less records Compare(i,j) and reports whether work[i] < work[j].
func (b *Builder) Less(i, j int) bool { return b.Cmp(i, j) < 0 }

// Compare records Compare(i,j) without deciding anything. Adapters that
// compare buffered values (merge) use this so the comparison still shows up
// at the positions the candidates came from.
func (b *Builder) Compare(i, j int) {
	op := Op{Kind: Compare, I: i, J: j}
	if b.check(op, i, j) {
		b.ops = append(b.ops, op)
	}
}

// Swap records Swap(i,j) and exchanges the working values. i == j is
// permitted: the operation is still emitted so playback can show
// "examined, not moved".
func (b *Builder) Swap(i, j int) {
	if !b.check(Op{Kind: Swap, I: i, J: j}, i, j) {
		return
	}
	b.ops = append(b.ops, Op{Kind: Swap, I: i, J: j})
	b.work[i], b.work[j] = b.work[j], b.work[i]
}

// Write records Write(i,value) and stores value in the working copy.
func (b *Builder) Write(i, value int) {
	op := Op{Kind: Write, I: i, Value: value}
	if !b.check(op, i) {
		return
	}
	b.ops = append(b.ops, op)
	b.work[i] = value
}

// Mark records a named boundary pointer move. Marks never mutate and may
// point at settled positions (a pivot lands where it settles).
func (b *Builder) Mark(label string, pos int) {
	op := Op{Kind: Mark, Label: label, I: pos}
	if b.finalized {
		b.fail(op, ErrAlreadyFinalized)
		return
	}
	if b.err != nil {
		return
	}
	if label == "" {
		b.fail(op, ErrEmptyLabel)
		return
	}
	if pos < 0 || pos >= len(b.work) {
		b.fail(op, ErrIndexOutOfRange)
		return
	}
	b.ops = append(b.ops, op)
}

// Settle records that positions lo..hi (inclusive) are final. Settled
// positions reject any later compare/swap/write.
func (b *Builder) Settle(lo, hi int) {
	op := Op{Kind: Settle, Lo: lo, Hi: hi}
	if b.finalized {
		b.fail(op, ErrAlreadyFinalized)
		return
	}
	if b.err != nil {
		return
	}
	if lo < 0 || hi >= len(b.work) || lo > hi {
		b.fail(op, ErrIndexOutOfRange)
		return
	}
	b.ops = append(b.ops, op)
	for p := lo; p <= hi; p++ {
		b.settled.Add(p)
	}
}

// Err returns the first contract violation, if any.
func (b *Builder) Err() error { return b.err }

// Finalize freezes the trace. A second call fails with ErrAlreadyFinalized.
func (b *Builder) Finalize() (*Trace, []int, error) {
	if b.finalized {
		return nil, nil, ErrAlreadyFinalized
	}
	b.finalized = true
	if b.err != nil {
		return nil, nil, b.err
	}
	snapshot := make([]int, len(b.initial))
	copy(snapshot, b.initial)
	return &Trace{ops: b.ops, initial: b.initial}, snapshot, nil
}

func (b *Builder) check(op Op, idx ...int) bool {
	if b.finalized {
		b.fail(op, ErrAlreadyFinalized)
		return false
	}
	if b.err != nil {
		return false
	}
	for _, i := range idx {
		if i < 0 || i >= len(b.work) {
			b.fail(op, ErrIndexOutOfRange)
			return false
		}
		if b.settled.Contains(i) {
			b.fail(op, ErrSettledMutation)
			return false
		}
	}
	return true
}

func (b *Builder) fail(op Op, err error) {
	if b.err == nil {
		b.err = &BuildError{Op: op, Seq: len(b.ops), Wrapped: err}
	}
}
