package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbridge/internal/config"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/orchestration"
)

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		N:             1000,
		Timeout:       time.Minute,
		CheckInterval: 4096,
		GCMode:        "auto",
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{"F(1000)", "1m0s", "999", "4096", "auto", "Estimated memory"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q:\n%s", want, output)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := fibonacci.GlobalFactory()

	t.Run("Single calculator mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(orchestration.GetCalculatorsToRun("big", factory), &buf)
		if !strings.Contains(buf.String(), "Single calculation") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("Multiple calculators mode", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(orchestration.GetCalculatorsToRun("all", factory), &buf)
		if !strings.Contains(buf.String(), "Parallel comparison") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})

	t.Run("No calculator", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		PrintExecutionMode(nil, &buf)
		if !strings.Contains(buf.String(), "No backend") {
			t.Errorf("unexpected output: %s", buf.String())
		}
	})
}

func TestAdditions(t *testing.T) {
	t.Parallel()
	for n, want := range map[uint64]uint64{0: 0, 1: 0, 2: 1, 100: 99} {
		if got := additions(n); got != want {
			t.Errorf("additions(%d) = %d, want %d", n, got, want)
		}
	}
}
