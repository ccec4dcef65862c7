package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fibbridge/internal/ui"
)

// PromptLoop prints prompt, reads one line and passes it, trimmed, to handle.
// If handle returns an error it is printed and the prompt is shown again.
// The loop ends at end of input, or when handle returns ErrStopLoop.
func PromptLoop(in io.Reader, out io.Writer, prompt string, handle func(line string) error) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		err := handle(strings.TrimSpace(scanner.Text()))
		if errors.Is(err, ErrStopLoop) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		}
	}
}

// ErrStopLoop ends a PromptLoop without error.
var ErrStopLoop = errors.New("stop prompt loop")
