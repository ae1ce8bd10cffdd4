package player

import (
	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/trace"
)

// Frame is the read-only snapshot handed to renderers each tick. Slices are
// fresh copies; a renderer can hold a Frame across frames without aliasing
// player state.
type Frame struct {
	State    State
	Values   []int
	Slots    []anim.Slot
	Op       trace.Op
	HasOp    bool
	Cursor   int
	TotalOps int
	Progress float64
	Speed    float64
	Counts   stats.Counts
}

// Frame captures the current playback state.
func (p *Player) Frame() Frame {
	f := Frame{
		State:    p.state,
		Cursor:   p.cursor,
		Progress: p.progress,
		Speed:    p.speed,
		Counts:   p.counts,
	}
	if p.tr == nil {
		return f
	}
	f.TotalOps = p.tr.Len()
	f.Values = make([]int, len(p.values))
	copy(f.Values, p.values)

	var op trace.Op
	active := false
	if p.cursor < p.tr.Len() && (p.state == Running || p.state == Paused) {
		op = p.tr.At(p.cursor)
		active = true
	}
	f.Op = op
	f.HasOp = active
	f.Slots = p.machine.Slots(op, p.progress, active)
	return f
}

// Values returns a copy of the logical array.
func (p *Player) Values() []int {
	out := make([]int, len(p.values))
	copy(out, p.values)
	return out
}
