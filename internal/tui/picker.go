// Package tui implements the interactive startup menu: pick an algorithm,
// tune the run parameters, and hand the resulting config to the live view.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/config"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var algorithmInfo = map[string]string{
	"bubble":    "adjacent swaps, n² passes",
	"selection": "scan for minimum, one swap per pass",
	"insertion": "grow a sorted prefix by adjacent swaps",
	"merge":     "split, sort halves, merge by writes",
	"quicksort": "partition around a pivot, recurse",
}

type stage int

const (
	stageMenu stage = iota
	stageConfig
	stageDone
)

type model struct {
	stage      stage
	cursor     int
	algorithms []string

	cfg         *config.Config
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	accepted bool
	width    int
	height   int
}

// New builds the picker over the given algorithm names.
func New(algorithms []string, cfg *config.Config) *model {
	return &model{
		stage:      stageMenu,
		algorithms: algorithms,
		cfg:        cfg,
		paramNames: []string{"size", "seed", "max_value", "speed"},
		width:      80,
		height:     24,
	}
}

// Pick runs the picker to completion. It returns the chosen config, or
// ok=false if the user quit.
func Pick(algorithms []string, cfg *config.Config) (*config.Config, bool, error) {
	p := tea.NewProgram(New(algorithms, cfg))
	final, err := p.Run()
	if err != nil {
		return nil, false, err
	}
	picked := final.(*model)
	return picked.cfg, picked.accepted, nil
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.stage {
		case stageMenu:
			return m.menuKey(msg)
		case stageConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m *model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.algorithms)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg.Algorithm = m.algorithms[m.cursor]
		m.stage = stageConfig
		m.paramCursor = 0
	}
	return m, nil
}

func (m *model) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.applyEdit()
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			s := msg.String()
			if len(s) == 1 && (s[0] >= '0' && s[0] <= '9' || s[0] == '.' || s[0] == '-') {
				m.editBuf += s
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.stage = stageMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "e":
		m.editing = true
		m.editBuf = ""
	case "enter", " ":
		if err := m.cfg.Validate(); err == nil {
			m.accepted = true
			m.stage = stageDone
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *model) applyEdit() {
	name := m.paramNames[m.paramCursor]
	switch name {
	case "speed":
		var v float64
		if _, err := fmt.Sscanf(m.editBuf, "%f", &v); err == nil && v > 0 {
			m.cfg.Speed = v
		}
	default:
		var v int
		if _, err := fmt.Sscanf(m.editBuf, "%d", &v); err != nil {
			return
		}
		switch name {
		case "size":
			if v > 0 {
				m.cfg.Size = v
				m.cfg.Values = nil
			}
		case "seed":
			m.cfg.Seed = int64(v)
		case "max_value":
			if v >= 1 {
				m.cfg.MaxValue = v
			}
		}
	}
}

func (m *model) paramValue(name string) string {
	switch name {
	case "size":
		return fmt.Sprintf("%d", m.cfg.Size)
	case "seed":
		return fmt.Sprintf("%d", m.cfg.Seed)
	case "max_value":
		return fmt.Sprintf("%d", m.cfg.MaxValue)
	case "speed":
		return fmt.Sprintf("%.2f", m.cfg.Speed)
	}
	return "?"
}

func (m *model) View() string {
	switch m.stage {
	case stageMenu:
		return m.menuView()
	case stageConfig:
		return m.configView()
	}
	return ""
}

func (m *model) menuView() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("SORTVIZ") + dim.Render("  pick an algorithm") + "\n\n")
	for i, name := range m.algorithms {
		desc := algorithmInfo[name]
		if i == m.cursor {
			b.WriteString("  " + green.Render("> "+name))
		} else {
			b.WriteString("    " + white.Render(name))
		}
		b.WriteString("  " + dimmer.Render(desc) + "\n")
	}
	b.WriteString("\n  " + dim.Render("↑↓ move · enter select · q quit") + "\n")
	return b.String()
}

func (m *model) configView() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render(strings.ToUpper(m.cfg.Algorithm)) + dim.Render("  run parameters") + "\n\n")
	for i, name := range m.paramNames {
		val := m.paramValue(name)
		if i == m.paramCursor && m.editing {
			b.WriteString("  " + yellow.Render("> "+fmt.Sprintf("%-10s", name)) + yellow.Render(m.editBuf+"▏") + "\n")
			continue
		}
		if i == m.paramCursor {
			b.WriteString("  " + green.Render("> "+fmt.Sprintf("%-10s", name)) + white.Render(val) + "\n")
		} else {
			b.WriteString("    " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}
	b.WriteString("\n  " + dim.Render("↑↓ move · e edit · enter start · esc back · q quit") + "\n")
	return b.String()
}
