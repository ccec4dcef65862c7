package tui

import (
	"errors"
	"time"
)

var errMismatch = errors.New("backends disagree on the result")

// MaxHistory bounds the number of results kept on screen.
const MaxHistory = 50

// HistoryEntry is one finished calculation.
type HistoryEntry struct {
	N        uint64
	Algo     string
	Backend  string
	Backends int
	Value    string
	Duration time.Duration
	Err      error
	ExitCode int
}

// inputHistory remembers submitted lines for up/down recall.
type inputHistory struct {
	lines []string
	pos   int // len(lines) means "past the newest line"
}

func (h *inputHistory) Add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if len(h.lines) > MaxHistory {
			h.lines = h.lines[len(h.lines)-MaxHistory:]
		}
	}
	h.pos = len(h.lines)
}

// Prev moves to the previous line. ok is false when there is none.
func (h *inputHistory) Prev() (line string, ok bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// Next moves to the next line; past the newest it returns "".
func (h *inputHistory) Next() string {
	if h.pos >= len(h.lines)-1 {
		h.pos = len(h.lines)
		return ""
	}
	h.pos++
	return h.lines[h.pos]
}
