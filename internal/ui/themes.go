package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnvVar selects a theme by name when colours are enabled.
const ThemeEnvVar = "FIBBRIDGE_THEME"

// Theme holds the ANSI sequences used by the line-oriented surfaces (CLI,
// REPL, playground). An empty field prints nothing.
type Theme struct {
	Name      string
	Primary   string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

// DarkTheme, LightTheme and NoColorTheme are the built-in themes.
var (
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	NoColorTheme = Theme{Name: "none"}
)

var themesByName = map[string]Theme{
	DarkTheme.Name:    DarkTheme,
	LightTheme.Name:   LightTheme,
	NoColorTheme.Name: NoColorTheme,
}

// TUITheme is the lipgloss palette of the terminal UI.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme goes with DarkTheme.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#3B82F6"),
		Accent:  lipgloss.Color("#F59E0B"),
		Success: lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
		Info:    lipgloss.Color("#4488FF"),
	}

	// LightTUITheme goes with LightTheme.
	LightTUITheme = TUITheme{
		Text:    lipgloss.Color("#1F2937"),
		Border:  lipgloss.Color("#1D4ED8"),
		Accent:  lipgloss.Color("#B45309"),
		Success: lipgloss.Color("#15803D"),
		Warning: lipgloss.Color("#C2410C"),
		Error:   lipgloss.Color("#B91C1C"),
		Dim:     lipgloss.Color("#6B7280"),
		Info:    lipgloss.Color("#6D28D9"),
	}

	// NoColorTUITheme leaves every colour to the terminal.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

var (
	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the lipgloss palette paired with the active theme.
func GetCurrentTUITheme() TUITheme {
	switch GetCurrentTheme().Name {
	case NoColorTheme.Name:
		return NoColorTUITheme
	case LightTheme.Name:
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// SetCurrentTheme installs t as the active theme.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	currentTheme = t
	themeMu.Unlock()
}

// SetTheme activates a built-in theme by name. Unknown names fall back to
// the dark theme.
func SetTheme(name string) {
	t, ok := themesByName[strings.ToLower(name)]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme picks the theme at startup. --no-color and NO_COLOR
// (https://no-color.org/, any value) disable colours; otherwise
// FIBBRIDGE_THEME chooses a theme, dark by default.
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv(ThemeEnvVar))
}
