// Package cli implements the terminal front end of fibbridge: execution
// banners, the progress spinner, result presentation, the interactive REPL,
// line prompt loops and shell completion scripts.
package cli
