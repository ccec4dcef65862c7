package playground

import (
	"fmt"
	"strconv"
	"strings"
)

// DemoArray is the fixed array indexed by the arrays exercise.
var DemoArray = [5]int{1, 2, 3, 4, 5}

// LookupResult is the outcome of one arrays exercise lookup.
type LookupResult struct {
	// Requested is the index the user typed.
	Requested uint64
	// Index is Requested wrapped onto the array.
	Index int
	// Element is DemoArray[Index].
	Element int
	// Divisibility describes Requested.
	Divisibility string
}

// Lookup parses an index typed by the user and resolves it against
// DemoArray.
func Lookup(line string) (LookupResult, error) {
	requested, err := strconv.ParseUint(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return LookupResult{}, fmt.Errorf("not a valid index: %q", line)
	}
	idx := WrapIndex(len(DemoArray), requested)
	return LookupResult{
		Requested:    requested,
		Index:        idx,
		Element:      DemoArray[idx],
		Divisibility: Divisibility(requested),
	}, nil
}

// String renders the two lines the exercise prints.
func (r LookupResult) String() string {
	return fmt.Sprintf("%s\nThe value of the element at index %d is: %d", r.Divisibility, r.Index, r.Element)
}
