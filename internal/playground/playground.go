// Package playground holds the small exercises exported next to the
// Fibonacci function: a greeting, an overflow-checked addition, array length
// and index wrapping, and a scoping demonstration.
package playground

import (
	"fmt"
	"io"
	"math"

	apperrors "github.com/agbru/fibbridge/internal/errors"
)

// DefaultGreetingName is used when Greeting receives no name.
const DefaultGreetingName = "napi-rs"

// Greeting returns "Hello, <name>!". A nil name greets DefaultGreetingName;
// an empty string is greeted as is.
func Greeting(name *string) string {
	n := DefaultGreetingName
	if name != nil {
		n = *name
	}
	return fmt.Sprintf("Hello, %s!", n)
}

// Plus100 returns input + 100. Results that do not fit in a uint32 are
// rejected rather than wrapped.
func Plus100(input uint32) (uint32, error) {
	if input > math.MaxUint32-100 {
		return 0, apperrors.NewValidationError("input", "%d + 100 overflows uint32", input)
	}
	return input + 100, nil
}

// ArrayLength returns the number of elements of arr. The element values are
// never inspected.
func ArrayLength(arr []any) uint32 {
	return uint32(len(arr))
}

// WrapIndex maps an arbitrary index onto [0, length). length must be
// positive.
func WrapIndex(length int, idx uint64) int {
	return int(idx % uint64(length))
}

// Divisibility reports the largest of 4, 3 and 2 that divides n, checked in
// that order.
func Divisibility(n uint64) string {
	switch {
	case n%4 == 0:
		return "index is divisible by 4"
	case n%3 == 0:
		return "index is divisible by 3"
	case n%2 == 0:
		return "index is divisible by 2"
	default:
		return "index is not divisible by 4, 3, or 2"
	}
}

// Shadowing prints the values seen by nested scopes that redeclare x, then
// a string rebound to its length.
func Shadowing(w io.Writer) {
	x := 5
	{
		x := x + 1
		fmt.Fprintf(w, "The value of x in the first-inner scope is: %d\n", x)
	}
	{
		x := x * 2
		fmt.Fprintf(w, "The value of x in the second-inner scope is: %d\n", x)
	}
	fmt.Fprintf(w, "The value of x is: %d\n", x)

	spaces := "   "
	{
		spaces := len(spaces)
		fmt.Fprintf(w, "The spaces length is: %d\n", spaces)
	}
}
