package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Theme holds the ANSI escape codes used for colored console output.
type Theme struct {
	Name string
	// Primary highlights the benchmarked index.
	Primary string
	// Secondary is used for host details.
	Secondary string
	Warning   string
	// Error marks mismatches.
	Error string
	Reset string
}

var (
	// DarkTheme is the default palette on a terminal.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;208m", // Orange
		Secondary: "\033[38;5;245m", // Grey
		Warning:   "\033[38;5;214m", // Light orange
		Error:     "\033[38;5;196m", // Red
		Reset:     "\033[0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = NoColorTheme
	themeMutex   sync.RWMutex
)

// TableTheme defines lipgloss-compatible colors for the summary table.
type TableTheme struct {
	Header  lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Name    lipgloss.TerminalColor
	Value   lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
}

var (
	// DarkTableTheme is the orange-dominant table palette.
	DarkTableTheme = TableTheme{
		Header:  lipgloss.Color("#FF8C00"),
		Border:  lipgloss.Color("#666666"),
		Name:    lipgloss.Color("#4488FF"),
		Value:   lipgloss.Color("#FFB347"),
		Success: lipgloss.Color("#9ece6a"),
		Error:   lipgloss.Color("#FF4444"),
	}

	// NoColorTableTheme renders the table with the terminal's default colors.
	NoColorTableTheme = TableTheme{
		Header:  lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Name:    lipgloss.NoColor{},
		Value:   lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
	}
)

// GetCurrentTableTheme returns the table theme matching the active theme.
func GetCurrentTableTheme() TableTheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	if currentTheme.Name == "none" {
		return NoColorTableTheme
	}
	return DarkTableTheme
}

// GetCurrentTheme returns the currently active theme in a thread-safe manner.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme sets the currently active theme in a thread-safe manner.
// This is primarily used by tests to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme for this process. Colors are disabled when
// noColor is set, when NO_COLOR is present in the environment
// (https://no-color.org/), or when out is not a terminal, so piped benchmark
// rows stay free of escape codes.
func InitTheme(noColor bool, out *os.File) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	if out == nil || !term.IsTerminal(int(out.Fd())) {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
