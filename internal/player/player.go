package player

import (
	"errors"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/trace"
)

// ErrInvalidSpeed indicates a non-positive speed factor; the previous speed
// is retained.
var ErrInvalidSpeed = errors.New("player: speed factor must be positive")

// State is the playback lifecycle.
type State uint8

const (
	Idle State = iota
	Ready
	Running
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "?"
	}
}

// Base operation durations in seconds at speed 1. Effective duration is
// base / speed.
const (
	compareDuration = 0.35
	swapDuration    = 0.90
	writeDuration   = 0.50
	markDuration    = 0.12
	settleDuration  = 0.25
)

func baseDuration(k trace.Kind) float64 {
	switch k {
	case trace.Swap:
		return swapDuration
	case trace.Write:
		return writeDuration
	case trace.Mark:
		return markDuration
	case trace.Settle:
		return settleDuration
	default:
		return compareDuration
	}
}

// Observer is notified after each operation commits. The values slice is the
// player's own and must not be retained or mutated.
type Observer interface {
	OnOperation(op trace.Op, values []int)
}

// Player replays an operation trace at a speed-scaled pace. It advances only
// inside Tick, driven by the host render loop, and owns the logical array
// exclusively: renderers see copies through Frame.
//
// Mutations apply at operation completion, never partially, so pausing
// mid-swap freezes the animation without touching values.
type Player struct {
	tr        *trace.Trace
	values    []int
	initial   []int
	machine   *anim.Machine
	cursor    int
	progress  float64
	speed     float64
	state     State
	counts    stats.Counts
	observers []Observer
}

func New() *Player {
	return &Player{speed: 1, state: Idle}
}

func (p *Player) AddObserver(o Observer) { p.observers = append(p.observers, o) }

// Load installs a trace and its initial snapshot, entering Ready from any
// state. In-flight progress is discarded; no cleanup is required.
func (p *Player) Load(tr *trace.Trace, snapshot []int) {
	p.tr = tr
	p.initial = make([]int, len(snapshot))
	copy(p.initial, snapshot)
	p.values = make([]int, len(snapshot))
	copy(p.values, snapshot)
	p.machine = anim.NewMachine(len(snapshot))
	p.cursor = 0
	p.progress = 0
	p.counts.Reset()
	p.state = Ready
}

// Start begins or resumes playback. No-op unless Ready or Paused.
func (p *Player) Start() {
	if p.state == Ready || p.state == Paused {
		p.state = Running
	}
}

// Pause freezes sub-phase progress exactly where it is. No-op unless
// Running.
func (p *Player) Pause() {
	if p.state == Running {
		p.state = Paused
	}
}

// Reset restores the initial snapshot and returns to Ready (or Idle if no
// trace is loaded). Safe from any state.
func (p *Player) Reset() {
	if p.tr == nil {
		p.state = Idle
		return
	}
	copy(p.values, p.initial)
	p.machine.Reset()
	p.cursor = 0
	p.progress = 0
	p.counts.Reset()
	p.state = Ready
}

// SetSpeed changes the pace factor. Valid in any state; a non-positive
// factor fails with ErrInvalidSpeed and the previous speed is retained.
func (p *Player) SetSpeed(factor float64) error {
	if factor <= 0 {
		return ErrInvalidSpeed
	}
	p.speed = factor
	return nil
}

func (p *Player) Speed() float64 { return p.speed }
func (p *Player) State() State   { return p.state }

// Tick advances playback by elapsed seconds. The elapsed budget is consumed
// in the time domain and the remainder carries across operation boundaries,
// so coarse and fine tick cadences land on identical state for the same
// cumulative time. A trace with no operations finishes on the first tick.
func (p *Player) Tick(elapsed float64) {
	if p.state == Ready && p.tr != nil && p.tr.Len() == 0 {
		p.state = Finished
		return
	}
	if p.state != Running || elapsed <= 0 {
		return
	}
	budget := elapsed * p.speed
	for budget > 0 {
		if p.cursor >= p.tr.Len() {
			p.progress = 0
			p.state = Finished
			return
		}
		op := p.tr.At(p.cursor)
		dur := baseDuration(op.Kind)
		need := (1 - p.progress) * dur
		if budget < need {
			p.progress += budget / dur
			return
		}
		budget -= need
		p.commit(op)
	}
	if p.cursor >= p.tr.Len() {
		p.state = Finished
	}
}

// commit is the settle point: the operation's mutation becomes visible
// atomically and the cursor moves on.
func (p *Player) commit(op trace.Op) {
	trace.Apply(p.values, op)
	p.machine.Commit(op)
	p.counts.Observe(op)
	for _, o := range p.observers {
		o.OnOperation(op, p.values)
	}
	p.cursor++
	p.progress = 0
}

// Seek commits operations until the cursor reaches n, bypassing timing.
// Playback lands Paused at the target (or Finished past the end). No-op in
// Idle.
func (p *Player) Seek(n int) {
	if p.state == Idle || p.tr == nil {
		return
	}
	if n < p.cursor {
		p.Reset()
	}
	for p.cursor < n && p.cursor < p.tr.Len() {
		p.commit(p.tr.At(p.cursor))
	}
	if p.cursor >= p.tr.Len() {
		p.state = Finished
		return
	}
	p.state = Paused
}

// Cursor reports the index of the in-progress operation.
func (p *Player) Cursor() int { return p.cursor }

// Progress reports sub-phase progress of the in-progress operation.
func (p *Player) Progress() float64 { return p.progress }

// Counts reports operation tallies committed so far.
func (p *Player) Counts() stats.Counts { return p.counts }
