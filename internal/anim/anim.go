package anim

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/san-kum/sortviz/internal/trace"
)

// Tag is the per-position sort state a renderer colors by.
type Tag uint8

const (
	Idle Tag = iota
	Comparing
	Swapping
	RecentlySwapped
	Sorted
)

func (t Tag) String() string {
	switch t {
	case Idle:
		return "idle"
	case Comparing:
		return "comparing"
	case Swapping:
		return "swapping"
	case RecentlySwapped:
		return "recent"
	case Sorted:
		return "sorted"
	default:
		return "?"
	}
}

// Phase is the sub-animation of a two-position swap.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseRise
	PhaseHold
	PhaseTranslate
	PhaseDescend
)

// Fixed fractions of operation progress for each swap phase.
const (
	riseEnd      = 0.30
	holdEnd      = 0.50
	translateEnd = 0.80
)

// SwapPhase remaps overall progress p into (phase, local progress in [0,1)).
func SwapPhase(p float64) (Phase, float64) {
	switch {
	case p < 0:
		return PhaseRise, 0
	case p < riseEnd:
		return PhaseRise, p / riseEnd
	case p < holdEnd:
		return PhaseHold, (p - riseEnd) / (holdEnd - riseEnd)
	case p < translateEnd:
		return PhaseTranslate, (p - holdEnd) / (translateEnd - holdEnd)
	case p < 1:
		return PhaseDescend, (p - translateEnd) / (1 - translateEnd)
	default:
		return PhaseDescend, 1
	}
}

// Lift is the normalized height of a swapping element: up during Rise, held,
// down during Descend.
func Lift(phase Phase, local float64) float64 {
	switch phase {
	case PhaseRise:
		return local
	case PhaseHold, PhaseTranslate:
		return 1
	case PhaseDescend:
		return 1 - local
	default:
		return 0
	}
}

// Shift is the normalized horizontal travel toward the partner position:
// 0 before Translate, interpolating during it, 1 after.
func Shift(phase Phase, local float64) float64 {
	switch phase {
	case PhaseTranslate:
		return local
	case PhaseDescend:
		return 1
	default:
		return 0
	}
}

// Slot is what the renderer contract exposes per array position.
type Slot struct {
	Tag           Tag
	Labels        []string
	Phase         Phase
	PhaseProgress float64
}

// Machine derives per-position state from the active operation and its
// progress. Only the minimum is persisted: the settled set, boundary labels,
// and the positions of the most recently committed swap (for the highlight
// hold). Everything else is recomputed every frame so state cannot drift.
type Machine struct {
	n      int
	sorted mapset.Set[int]
	labels map[string]int
	recent []int
}

func NewMachine(n int) *Machine {
	return &Machine{
		n:      n,
		sorted: mapset.NewThreadUnsafeSet[int](),
		labels: make(map[string]int),
	}
}

func (m *Machine) Reset() {
	m.sorted.Clear()
	m.labels = make(map[string]int)
	m.recent = nil
}

// Commit applies a completed operation's persistent effects. The highlight
// of a swap survives exactly one following operation: committing anything
// else clears it.
func (m *Machine) Commit(op trace.Op) {
	switch op.Kind {
	case trace.Swap:
		if op.I != op.J {
			m.recent = []int{op.I, op.J}
		} else {
			m.recent = nil
		}
	case trace.Write:
		m.recent = []int{op.I}
	case trace.Mark:
		m.recent = nil
		m.labels[op.Label] = op.I
	case trace.Settle:
		m.recent = nil
		for p := op.Lo; p <= op.Hi; p++ {
			m.sorted.Add(p)
		}
	default:
		m.recent = nil
	}
}

// Slots derives the full per-position view. active reports whether op is an
// in-progress operation (false between traces or once finished).
func (m *Machine) Slots(op trace.Op, progress float64, active bool) []Slot {
	slots := make([]Slot, m.n)
	for pos := range slots {
		slots[pos] = m.slot(pos, op, progress, active)
	}
	return slots
}

func (m *Machine) slot(pos int, op trace.Op, progress float64, active bool) Slot {
	s := Slot{Tag: Idle, Labels: m.labelsAt(pos)}
	if m.sorted.Contains(pos) {
		s.Tag = Sorted
		return s
	}
	if active {
		switch op.Kind {
		case trace.Compare:
			if pos == op.I || pos == op.J {
				s.Tag = Comparing
				return s
			}
		case trace.Swap:
			if pos == op.I || pos == op.J {
				if op.I == op.J {
					// Self-swap collapses to a brief compare-style flash.
					s.Tag = Comparing
					return s
				}
				s.Tag = Swapping
				s.Phase, s.PhaseProgress = SwapPhase(progress)
				return s
			}
		case trace.Write:
			if pos == op.I {
				s.Tag = Swapping
				s.PhaseProgress = progress
				return s
			}
		}
	}
	for _, r := range m.recent {
		if r == pos {
			s.Tag = RecentlySwapped
			return s
		}
	}
	return s
}

func (m *Machine) labelsAt(pos int) []string {
	var out []string
	for name, p := range m.labels {
		if p == pos {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// SortedCount reports how many positions have settled.
func (m *Machine) SortedCount() int { return m.sorted.Cardinality() }
