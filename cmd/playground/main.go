// Command playground runs the console exercises that ship next to the
// native exports.
//
//	playground hello [name]
//	playground arrays
//	playground fibonacci
//	playground shadowing
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/agbru/fibbridge/internal/cli"
	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/playground"
	"github.com/agbru/fibbridge/internal/ui"
)

func main() {
	ui.InitTheme(false)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		usage(errOut)
		return apperrors.ExitErrorConfig
	}

	var err error
	switch args[0] {
	case "hello":
		var name *string
		if len(args) > 1 {
			name = &args[1]
		}
		fmt.Fprintln(out, playground.Greeting(name))
	case "arrays":
		err = cli.PromptLoop(in, out, "Please enter an array index.", func(line string) error {
			res, err := playground.Lookup(line)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res)
			return nil
		})
	case "fibonacci":
		fmt.Fprintln(out, "Calc n-th fibonacci number")
		err = cli.PromptLoop(in, out, "Enter n:", func(line string) error {
			n, err := strconv.ParseUint(line, 10, 32)
			if err != nil {
				return fmt.Errorf("not a valid n: %q", line)
			}
			fmt.Fprintf(out, "The %d-th value of fibonacci is: %s\n", n, fibonacci.Fibonacci(uint32(n)))
			return nil
		})
	case "shadowing":
		playground.Shadowing(out)
	default:
		fmt.Fprintf(errOut, "unknown exercise %q\n", args[0])
		usage(errOut)
		return apperrors.ExitErrorConfig
	}

	if err != nil {
		fmt.Fprintf(errOut, "read error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: playground hello [name] | arrays | fibonacci | shadowing")
}
