package ui

import (
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ANSI attribute escapes shared by every colored theme.
const (
	ansiBold      = "\033[1m"
	ansiUnderline = "\033[4m"
	ansiReset     = "\033[0m"
)

// fg256 returns the xterm-256 foreground escape for a palette index.
func fg256(n int) string {
	return "\033[38;5;" + strconv.Itoa(n) + "m"
}

// Theme is a named set of ANSI escape codes for line-oriented output. An
// empty field disables that attribute, which is how NoColorTheme renders
// everything as plain text.
type Theme struct {
	Name      string
	Primary   string // main accent for headlines and values
	Secondary string // de-emphasized companion to Primary
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

var (
	// DarkTheme targets dark terminal backgrounds with bright accents.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   fg256(39),  // bright blue
		Secondary: fg256(245), // grey
		Success:   fg256(82),  // bright green
		Warning:   fg256(220), // yellow
		Error:     fg256(196), // red
		Info:      fg256(141), // purple
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// LightTheme swaps in darker shades that stay readable on light
	// backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   fg256(27),  // dark blue
		Secondary: fg256(240), // dark grey
		Success:   fg256(28),  // dark green
		Warning:   fg256(130), // orange
		Error:     fg256(124), // dark red
		Info:      fg256(54),  // dark purple
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// OrangeTheme carries the dashboard's warm palette over to line output.
	OrangeTheme = Theme{
		Name:      "orange",
		Primary:   fg256(208), // orange
		Secondary: fg256(245), // grey
		Success:   fg256(82),  // bright green
		Warning:   fg256(214), // light orange
		Error:     fg256(196), // red
		Info:      fg256(69),  // blue
		Bold:      ansiBold,
		Underline: ansiUnderline,
		Reset:     ansiReset,
	}

	// NoColorTheme renders everything unstyled. Selected with --theme=none
	// or implicitly through the NO_COLOR environment variable.
	NoColorTheme = Theme{Name: "none"}

	themeMutex   sync.RWMutex
	currentTheme = DarkTheme
)

// themesByName indexes the built-in themes for SetTheme.
var themesByName = map[string]Theme{
	"dark":   DarkTheme,
	"light":  LightTheme,
	"orange": OrangeTheme,
	"none":   NoColorTheme,
}

// SetTheme activates the named built-in theme. Unknown names select dark.
func SetTheme(name string) {
	t, ok := themesByName[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme applies the configured theme at startup, honoring the NO_COLOR
// convention (https://no-color.org/): any value in that variable forces the
// unstyled theme no matter what was requested.
func InitTheme(name string) {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		name = "none"
	}
	SetTheme(name)
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	t := currentTheme
	themeMutex.RUnlock()
	return t
}

// SetCurrentTheme installs t as the active theme without name lookup. Tests
// use it to restore whatever theme they found.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	currentTheme = t
	themeMutex.Unlock()
}

// TUITheme carries the lipgloss colors used by the live dashboard. The CLI
// themes above style individual lines; this type styles whole panels.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the dashboard's orange-on-black palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#000000"),
		Text:    lipgloss.Color("#E0E0E0"),
		Dim:     lipgloss.Color("#666666"),
		Border:  lipgloss.Color("#FF6600"),
		Accent:  lipgloss.Color("#FF8C00"),
		Info:    lipgloss.Color("#4488FF"),
		Success: lipgloss.Color("#9ece6a"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
	}

	// NoColorTUITheme leaves every element on the terminal defaults.
	NoColorTUITheme = noColorTUITheme()
)

func noColorTUITheme() TUITheme {
	n := lipgloss.NoColor{}
	return TUITheme{Bg: n, Text: n, Border: n, Accent: n, Success: n, Warning: n, Error: n, Dim: n, Info: n}
}

// GetCurrentTUITheme maps the active CLI theme onto a dashboard palette.
// Only the unstyled theme gets a distinct mapping; every colored theme uses
// the standard dashboard colors.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name != "none" {
		return DarkTUITheme
	}
	return NoColorTUITheme
}
