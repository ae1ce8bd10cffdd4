package trace

import (
	"encoding/json"
	"fmt"
)

// Kind discriminates the recorded operation variants.
type Kind uint8

const (
	Compare Kind = iota
	Swap
	Write
	Mark
	Settle
)

func (k Kind) String() string {
	switch k {
	case Compare:
		return "compare"
	case Swap:
		return "swap"
	case Write:
		return "write"
	case Mark:
		return "mark"
	case Settle:
		return "settle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalJSON renders the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Op is one semantic step of a sorting algorithm. Field usage per kind:
//
//	Compare: I, J        positions read, no mutation
//	Swap:    I, J        values exchanged (I == J allowed, no-op mutation)
//	Write:   I, Value    Value stored at position I
//	Mark:    Label, I    named boundary pointer moved to position I
//	Settle:  Lo, Hi      inclusive range now known-final
type Op struct {
	Kind  Kind   `json:"kind"`
	I     int    `json:"i"`
	J     int    `json:"j"`
	Value int    `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
	Lo    int    `json:"lo,omitempty"`
	Hi    int    `json:"hi,omitempty"`
}

func (o Op) String() string {
	switch o.Kind {
	case Compare:
		return fmt.Sprintf("compare(%d,%d)", o.I, o.J)
	case Swap:
		return fmt.Sprintf("swap(%d,%d)", o.I, o.J)
	case Write:
		return fmt.Sprintf("write(%d,%d)", o.I, o.Value)
	case Mark:
		return fmt.Sprintf("mark(%s,%d)", o.Label, o.I)
	case Settle:
		return fmt.Sprintf("settle(%d..%d)", o.Lo, o.Hi)
	default:
		return o.Kind.String()
	}
}

// Trace is the finished, read-only operation sequence together with the
// snapshot it replays against.
type Trace struct {
	ops     []Op
	initial []int
}

// New assembles a trace from an already-recorded operation list, as when
// reloading a persisted run. Both slices are copied.
func New(initial []int, ops []Op) *Trace {
	t := &Trace{
		ops:     make([]Op, len(ops)),
		initial: make([]int, len(initial)),
	}
	copy(t.ops, ops)
	copy(t.initial, initial)
	return t
}

func (t *Trace) Len() int { return len(t.ops) }

func (t *Trace) At(idx int) Op { return t.ops[idx] }

// Ops returns a copy so callers cannot mutate the sequence.
func (t *Trace) Ops() []Op {
	out := make([]Op, len(t.ops))
	copy(out, t.ops)
	return out
}

// Initial returns a copy of the array snapshot the trace was built from.
func (t *Trace) Initial() []int {
	out := make([]int, len(t.initial))
	copy(out, t.initial)
	return out
}

// Apply mutates values according to op. Compare, Mark and Settle are
// read-only; Swap with I == J is an emitted no-op.
func Apply(values []int, op Op) {
	switch op.Kind {
	case Swap:
		values[op.I], values[op.J] = values[op.J], values[op.I]
	case Write:
		values[op.I] = op.Value
	}
}

// Replay applies every operation in order to a copy of the initial snapshot
// and returns the resulting array.
func (t *Trace) Replay() []int {
	values := t.Initial()
	for _, op := range t.ops {
		Apply(values, op)
	}
	return values
}
