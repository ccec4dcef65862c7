// Package logging provides the logging interface used across fibbridge.
// A zerolog-backed adapter is the default; a standard-library adapter exists
// for sinks that expect plain prefixed lines.
package logging
