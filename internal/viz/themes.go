package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/anim"
)

// Theme defines the color scheme for the TUI. Bar colors are keyed by the
// animation tag of each slot.
type Theme struct {
	Name      string
	Idle      lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Recent    lipgloss.Color
	Sorted    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Error     lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Idle:      lipgloss.Color("#ff00ff"), // Magenta
		Comparing: lipgloss.Color("#ffff00"), // Yellow
		Swapping:  lipgloss.Color("#00ffff"), // Cyan
		Recent:    lipgloss.Color("#ff8800"),
		Sorted:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Accent:    lipgloss.Color("#ff00ff"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Idle:      lipgloss.Color("#00cc00"), // Green phosphor
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#88ff88"),
		Recent:    lipgloss.Color("#00ff00"),
		Sorted:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#88ff88"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Idle:      lipgloss.Color("#cccccc"),
		Comparing: lipgloss.Color("#0088ff"),
		Swapping:  lipgloss.Color("#ffffff"),
		Recent:    lipgloss.Color("#ffaa00"),
		Sorted:    lipgloss.Color("#00ff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Accent:    lipgloss.Color("#0088ff"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Idle:      lipgloss.Color("#0077be"), // Ocean blue
		Comparing: lipgloss.Color("#ffd700"),
		Swapping:  lipgloss.Color("#00a8cc"),
		Recent:    lipgloss.Color("#ffcc00"),
		Sorted:    lipgloss.Color("#00ff88"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Accent:    lipgloss.Color("#ffd700"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Idle:      lipgloss.Color("#ff6b6b"), // Coral
		Comparing: lipgloss.Color("#feca57"),
		Swapping:  lipgloss.Color("#ff9ff3"),
		Recent:    lipgloss.Color("#ffc048"),
		Sorted:    lipgloss.Color("#5fd068"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Error:     lipgloss.Color("#ff4757"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// BarColor maps an animation tag to the theme color for that bar.
func (t Theme) BarColor(tag anim.Tag) lipgloss.Color {
	switch tag {
	case anim.Comparing:
		return t.Comparing
	case anim.Swapping:
		return t.Swapping
	case anim.RecentlySwapped:
		return t.Recent
	case anim.Sorted:
		return t.Sorted
	default:
		return t.Idle
	}
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
