// Package ui holds the colour themes shared by the CLI, the REPL and the TUI.
// ANSI helpers read the active theme, so switching to NoColorTheme (via
// --no-color or NO_COLOR) silences every coloured write at once.
package ui
