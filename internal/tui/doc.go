// Package tui implements the interactive terminal front end of fibbridge on
// top of bubbletea. The user types an index, the calculation runs as a
// tea.Cmd while progress streams in through the program, and every result is
// appended to a scrollable history.
package tui
