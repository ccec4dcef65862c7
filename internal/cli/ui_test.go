package cli

import (
	"bytes"
	"io"
	"math/big"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/orchestration"
	"github.com/agbru/fibbridge/internal/ui"
)

// MockSpinner records calls made by DisplayProgress.
type MockSpinner struct {
	mu       sync.Mutex
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffixes = append(m.suffixes, suffix)
}

func TestDisplayResultTruncation(t *testing.T) {
	ui.InitTheme(true)

	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(200), nil)
	tests := []struct {
		name        string
		result      *big.Int
		opts        orchestration.PresentationOptions
		contains    []string
		notContains []string
	}{
		{
			name:     "Details only",
			result:   big.NewInt(12345),
			opts:     orchestration.PresentationOptions{N: 10, Details: true},
			contains: []string{"Result binary size:", "Detailed result analysis", "Calculation time", "Number of digits"},
			notContains: []string{"Calculated value"},
		},
		{
			name:     "ShowValue Output",
			result:   big.NewInt(12345),
			opts:     orchestration.PresentationOptions{N: 10, ShowValue: true},
			contains: []string{"Calculated value", "F(10) =", "12,345"},
		},
		{
			name:     "Truncated Output",
			result:   huge,
			opts:     orchestration.PresentationOptions{N: 100, ShowValue: true},
			contains: []string{"(truncated)", "Tip: use"},
		},
		{
			name:        "Verbose Output",
			result:      huge,
			opts:        orchestration.PresentationOptions{N: 100, Verbose: true},
			contains:    []string{"F(100) ="},
			notContains: []string{"(truncated)"},
		},
		{
			name:     "Hex Output",
			result:   big.NewInt(255),
			opts:     orchestration.PresentationOptions{N: 10, ShowValue: true, Hex: true},
			contains: []string{"0xff"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DisplayResult(tt.result, time.Millisecond, tt.opts, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(output, s) {
					t.Errorf("Expected output not to contain %q, but got:\n%s", s, output)
				}
			}
		})
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))
	rs := &realSpinner{s}

	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan fibonacci.ProgressUpdate)

	go func() {
		progressChan <- fibonacci.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	mockS.mu.Lock()
	defer mockS.mu.Unlock()
	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if len(mockS.suffixes) == 0 || !strings.Contains(mockS.suffixes[len(mockS.suffixes)-1], "100.00%") {
		t.Errorf("last suffix should show completion, got %v", mockS.suffixes)
	}
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan fibonacci.ProgressUpdate)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestCLIColorProvider(t *testing.T) {
	ui.InitTheme(false)
	var c CLIColorProvider
	if c.Red() != ui.ColorRed() || c.Yellow() != ui.ColorYellow() || c.Reset() != ui.ColorReset() {
		t.Error("CLIColorProvider should return the current theme colors")
	}
}
