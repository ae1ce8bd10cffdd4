// Package gui is the Raylib renderer: the same playback frames as the TUI,
// drawn as hardware-accelerated rectangles.
package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	screenW = 1280
	screenH = 720
	marginX = 60
	marginY = 60
	// Pixel height of a fully lifted bar during the swap animation.
	liftPixels = 48
)

// Theme colors (monochrome with tag accents)
var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colIdle    = rl.NewColor(180, 180, 180, 255)
	colCompare = rl.NewColor(255, 220, 80, 255)
	colSwap    = rl.NewColor(80, 220, 255, 255)
	colRecent  = rl.NewColor(255, 150, 60, 255)
	colSorted  = rl.NewColor(80, 255, 140, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
)

func tagColor(tag anim.Tag) rl.Color {
	switch tag {
	case anim.Comparing:
		return colCompare
	case anim.Swapping:
		return colSwap
	case anim.RecentlySwapped:
		return colRecent
	case anim.Sorted:
		return colSorted
	default:
		return colIdle
	}
}

type App struct {
	player    *player.Player
	algorithm string
}

func NewApp(p *player.Player, algorithm string) *App {
	return &App{player: p, algorithm: algorithm}
}

// Run opens the window and blocks until it is closed. The player is ticked
// with Raylib's per-frame delta, so playback pace is frame-rate independent.
func Run(p *player.Player, algorithm string) {
	rl.InitWindow(screenW, screenH, "sortviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(rl.KeyQ)

	app := NewApp(p, algorithm)
	p.Start()
	app.loop()
}

func (a *App) loop() {
	for !rl.WindowShouldClose() {
		a.handleInput()
		a.player.Tick(float64(rl.GetFrameTime()))

		frame := a.player.Frame()
		rl.BeginDrawing()
		rl.ClearBackground(colBg)
		a.drawBars(frame)
		a.drawHUD(frame)
		rl.EndDrawing()
	}
}

func (a *App) handleInput() {
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		if a.player.State() == player.Running {
			a.player.Pause()
		} else {
			a.player.Start()
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.player.Reset()
		a.player.Start()
	case rl.IsKeyPressed(rl.KeyEqual), rl.IsKeyPressed(rl.KeyKpAdd):
		a.player.SetSpeed(a.player.Speed() * 1.25)
	case rl.IsKeyPressed(rl.KeyMinus), rl.IsKeyPressed(rl.KeyKpSubtract):
		a.player.SetSpeed(a.player.Speed() * 0.8)
	}
}

func (a *App) drawBars(f player.Frame) {
	n := len(f.Values)
	if n == 0 {
		return
	}
	maxV := 1
	for _, v := range f.Values {
		if v > maxV {
			maxV = v
		}
	}

	plotW := float64(screenW - 2*marginX)
	plotH := float64(screenH - 2*marginY - liftPixels)
	slotW := plotW / float64(n)
	barW := slotW * 0.8
	baseY := float64(screenH - marginY)

	// Idle bars first so travelling bars draw on top when they cross.
	for pass := 0; pass < 2; pass++ {
		for i, v := range f.Values {
			slot := f.Slots[i]
			active := slot.Tag == anim.Swapping
			if (pass == 0) == active {
				continue
			}

			x := marginX + float64(i)*slotW + (slotW-barW)/2
			lift := 0.0
			if active && f.HasOp && f.Op.Kind == trace.Swap && f.Op.I != f.Op.J {
				partner := f.Op.I + f.Op.J - i
				shift := anim.Shift(slot.Phase, slot.PhaseProgress)
				x += shift * float64(partner-i) * slotW
				lift = anim.Lift(slot.Phase, slot.PhaseProgress)
			}

			h := plotH * float64(v) / float64(maxV)
			if h < 2 {
				h = 2
			}
			y := baseY - h - lift*liftPixels
			rl.DrawRectangle(int32(math.Round(x)), int32(math.Round(y)),
				int32(math.Round(barW)), int32(math.Round(h)), tagColor(slot.Tag))

			for li, label := range slot.Labels {
				rl.DrawText(label, int32(math.Round(x)), int32(baseY)+8+int32(li)*18, 16, colText)
			}
		}
	}
}

func (a *App) drawHUD(f player.Frame) {
	rl.DrawText(a.algorithm, marginX, 16, 28, rl.White)
	rl.DrawText(f.State.String(), marginX+240, 22, 20, colText)

	status := fmt.Sprintf("step %d/%d   speed %.2fx", f.Cursor, f.TotalOps, f.Speed)
	rl.DrawText(status, marginX+420, 22, 20, colText)

	counts := fmt.Sprintf("cmp %d   swap %d   write %d",
		f.Counts.Comparisons, f.Counts.Swaps, f.Counts.Writes)
	rl.DrawText(counts, marginX+760, 22, 20, colText)

	rl.DrawText("SPACE pause   R reset   +/- speed   Q quit",
		marginX, screenH-28, 16, colTextDim)
}
