package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, overridden at link time with
// -ldflags "-X github.com/agbru/fibbridge/internal/app.Version=v1.2.3".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version banner. Scanning
// stops at "--".
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "--":
			return false
		case "-V", "-version", "--version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fibbridge %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
