package cli

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
)

func TestPromptLoop(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	var got []int

	err := PromptLoop(strings.NewReader("1\nx\n 3 \n"), &out, "Enter n:", func(line string) error {
		v, err := strconv.Atoi(line)
		if err != nil {
			return errors.New("please enter a number")
		}
		got = append(got, v)
		return nil
	})
	if err != nil {
		t.Fatalf("PromptLoop error: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("handled values = %v, want [1 3]", got)
	}
	if c := strings.Count(out.String(), "Enter n:"); c != 4 {
		t.Errorf("prompt shown %d times, want 4", c)
	}
	if !strings.Contains(out.String(), "please enter a number") {
		t.Errorf("error should be printed:\n%s", out.String())
	}
}

func TestPromptLoopStop(t *testing.T) {
	t.Parallel()
	calls := 0
	err := PromptLoop(strings.NewReader("a\nb\nc\n"), &bytes.Buffer{}, ">", func(string) error {
		calls++
		if calls == 2 {
			return ErrStopLoop
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}
