package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/anim"
	"github.com/san-kum/sortviz/internal/player"
	"github.com/san-kum/sortviz/internal/stats"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	barRows         = 16
	liftRows        = 3
	canvasWidth     = 80
	canvasHeight    = 20
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(42)
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			MarginBottom(1)
	graphStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("49")).
			Padding(1, 0)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

type TickMsg time.Time

// Model is the live playback view. It owns the player and drives it with
// wall-clock deltas, so playback pace does not depend on the tick cadence.
type Model struct {
	player     *player.Player
	algorithm  string
	frameRate  int
	lastTick   time.Time
	lastCursor int
	canvas     *Canvas
	invHistory []float64
	detail     bool
	recording  bool
	frames     []*image.Paletted
	showHelp   bool
}

// NewModel wraps an already-loaded player. Playback starts immediately.
func NewModel(p *player.Player, algorithm string, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 60
	}
	m := Model{
		player:     p,
		algorithm:  algorithm,
		frameRate:  frameRate,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		invHistory: make([]float64, 0, historyCapacity),
	}
	m.invHistory = append(m.invHistory, float64(stats.Inversions(p.Values())))
	p.Start()
	return m
}

func (m Model) tickCmd() tea.Cmd {
	interval := time.Second / time.Duration(m.frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles input events and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.player.State() == player.Running {
				m.player.Pause()
			} else {
				m.player.Start()
			}
		case "r":
			m.player.Reset()
			m.invHistory = m.invHistory[:0]
			m.invHistory = append(m.invHistory, float64(stats.Inversions(m.player.Values())))
			m.lastCursor = 0
			m.player.Start()
		case "+", "=":
			m.player.SetSpeed(m.player.Speed() * 1.25)
		case "-", "_":
			m.player.SetSpeed(m.player.Speed() * 0.8)
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "d":
			m.detail = !m.detail
		case "g":
			if m.recording {
				m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		now := time.Time(msg)
		elapsed := time.Second / time.Duration(m.frameRate)
		if !m.lastTick.IsZero() {
			elapsed = now.Sub(m.lastTick)
		}
		m.lastTick = now
		m.player.Tick(elapsed.Seconds())

		if cursor := m.player.Cursor(); cursor != m.lastCursor {
			m.lastCursor = cursor
			m.invHistory = append(m.invHistory, float64(stats.Inversions(m.player.Values())))
			if len(m.invHistory) > historyCapacity {
				m.invHistory = m.invHistory[1:]
			}
		}
		if m.recording {
			m.drawDetail(m.player.Frame())
			m.captureFrame()
		}
		return m, m.tickCmd()
	}
	return m, nil
}

// View renders the TUI interface.
func (m Model) View() string {
	f := m.player.Frame()
	th := CurrentTheme

	var left string
	if m.detail {
		m.drawDetail(f)
		left = canvasStyle.Render(m.canvas.String())
	} else {
		left = canvasStyle.Render(renderBars(f, th) + "\n" + renderMarkers(f, th))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.algorithm)) + "\n")
	s.WriteString(statusLine(f.State, m.recording) + "\n\n")

	if len(m.invHistory) > 1 {
		chart := asciigraph.Plot(m.invHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Inversions"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(Metric("Operation", opLabel(f)) + "\n")
	s.WriteString(Metric("Step", fmt.Sprintf("%d / %d", f.Cursor, f.TotalOps)) + "\n")
	s.WriteString(Metric("Speed", fmt.Sprintf("%.2fx", f.Speed)) + "\n")
	s.WriteString(Metric("Comparisons", fmt.Sprintf("%d", f.Counts.Comparisons)) + "\n")
	s.WriteString(Metric("Swaps", fmt.Sprintf("%d", f.Counts.Swaps)) + "\n")
	s.WriteString(Metric("Writes", fmt.Sprintf("%d", f.Counts.Writes)) + "\n")
	s.WriteString(Metric("Theme", th.Name) + "\n")
	s.WriteString("\n" + Divider(21) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit\nT:Theme  D:Detail G:Record\n+/-:Speed ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, left, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Reset to initial array   ║
║  Q        - Quit                     ║
║  +/=      - Speed up (x1.25)         ║
║  -/_      - Slow down (x0.8)         ║
║  D        - Toggle Braille detail    ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func statusLine(st player.State, recording bool) string {
	var s string
	switch st {
	case player.Running:
		s = StatusRunning.Render("RUNNING")
	case player.Paused:
		s = StatusPaused.Render("PAUSED")
	case player.Finished:
		s = StatusFinished.Render("FINISHED")
	default:
		s = Subtle.Render(strings.ToUpper(st.String()))
	}
	if recording {
		s += "  " + StatusRecording.Render("● REC")
	}
	return s
}

func opLabel(f player.Frame) string {
	if !f.HasOp {
		return "-"
	}
	return fmt.Sprintf("%s %2.0f%%", f.Op, f.Progress*100)
}

// renderBars draws the array as colored columns. Swapping bars get the lift
// and lateral travel from the animation phases; active bars paint over idle
// ones when they cross.
func renderBars(f player.Frame, th Theme) string {
	n := len(f.Values)
	if n == 0 {
		return Subtle.Render("(empty array)")
	}

	maxV := 1
	for _, v := range f.Values {
		if v > maxV {
			maxV = v
		}
	}

	xs := make([]int, n)
	lifts := make([]int, n)
	for i := range xs {
		xs[i] = i
	}
	if f.HasOp && f.Op.Kind == trace.Swap && f.Op.I != f.Op.J {
		for _, pos := range []int{f.Op.I, f.Op.J} {
			s := f.Slots[pos]
			if s.Tag != anim.Swapping {
				continue
			}
			partner := f.Op.I + f.Op.J - pos
			shift := anim.Shift(s.Phase, s.PhaseProgress)
			xs[pos] = pos + int(math.Round(shift*float64(partner-pos)))
			lifts[pos] = int(math.Round(anim.Lift(s.Phase, s.PhaseProgress) * liftRows))
		}
	}

	totalRows := barRows + liftRows
	grid := make([][]string, totalRows)
	for r := range grid {
		grid[r] = make([]string, n)
	}

	drawOrder := make([]int, 0, n)
	for i := range f.Slots {
		if f.Slots[i].Tag != anim.Swapping {
			drawOrder = append(drawOrder, i)
		}
	}
	for i := range f.Slots {
		if f.Slots[i].Tag == anim.Swapping {
			drawOrder = append(drawOrder, i)
		}
	}

	for _, i := range drawOrder {
		x := xs[i]
		if x < 0 || x >= n {
			continue
		}
		h := f.Values[i] * barRows / maxV
		if h < 1 {
			h = 1
		}
		cell := lipgloss.NewStyle().Foreground(th.BarColor(f.Slots[i].Tag)).Render("██")
		bottom := totalRows - 1 - lifts[i]
		for r := 0; r < h; r++ {
			row := bottom - r
			if row < 0 {
				break
			}
			grid[row][x] = cell
		}
	}

	var b strings.Builder
	for r := range grid {
		for x := range grid[r] {
			if grid[r][x] == "" {
				b.WriteString("  ")
			} else {
				b.WriteString(grid[r][x])
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMarkers draws boundary pointers under their columns plus a legend.
func renderMarkers(f player.Frame, th Theme) string {
	n := len(f.Slots)
	marker := lipgloss.NewStyle().Foreground(th.Accent)
	var row strings.Builder
	legend := make([]string, 0, 4)
	for i, s := range f.Slots {
		if len(s.Labels) > 0 {
			row.WriteString(marker.Render("▲▲"))
			for _, l := range s.Labels {
				legend = append(legend, fmt.Sprintf("%s=%d", l, i))
			}
		} else {
			row.WriteString("  ")
		}
		if i < n-1 {
			row.WriteString(" ")
		}
	}
	if len(legend) == 0 {
		return row.String()
	}
	return row.String() + "\n" + Subtle.Render(strings.Join(legend, "  "))
}

// drawDetail renders the array onto the Braille canvas at dot resolution.
func (m *Model) drawDetail(f player.Frame) {
	m.canvas.Clear()
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
	dotsW, dotsH := canvasWidth*2, canvasHeight*4
	liftDots := 8
	barW := dotsW/n - 1
	if barW < 1 {
		barW = 1
	}
	for i, v := range f.Values {
		x := i * dotsW / n
		h := v * (dotsH - liftDots - 1) / maxV
		if h < 1 {
			h = 1
		}
		baseY := dotsH - 1
		s := f.Slots[i]
		if s.Tag == anim.Swapping {
			baseY -= int(math.Round(anim.Lift(s.Phase, s.PhaseProgress) * float64(liftDots)))
		}
		m.canvas.DrawBar(x, baseY, barW, h)
	}
}

// captureFrame rasterizes the Braille canvas into a paletted image for the
// GIF recorder.
func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := canvasWidth*charW, canvasHeight*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})
	for row := 0; row < canvasHeight; row++ {
		for col := 0; col < canvasWidth; col++ {
			r := m.canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotMask[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	out := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, 2)
	}
	f, err := os.Create("sortviz.gif")
	if err != nil {
		return
	}
	defer f.Close()
	gif.EncodeAll(f, &out)
}
