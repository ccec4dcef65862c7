package native

import (
	"errors"
	"fmt"
	"sort"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/fibonacci"
	"github.com/agbru/fibbridge/internal/playground"
)

// ErrUnknownFunction is returned by Invoke for names missing from Exports.
var ErrUnknownFunction = errors.New("unknown native function")

// Param describes one parameter of an exported function.
type Param struct {
	Name     string
	Optional bool
}

// Export is a Go function reachable from a host.
type Export struct {
	// Name is the name the host calls.
	Name string
	// Params lists the parameters in call order.
	Params []Param
	// call receives exactly len(Params) arguments; omitted optional ones are nil.
	call func(args []any) (any, error)
}

// Exports is the table of functions visible to hosts, keyed by host name.
var Exports = map[string]Export{
	"fibonacci": {
		Name:   "fibonacci",
		Params: []Param{{Name: "n"}},
		call: func(args []any) (any, error) {
			n, err := ToUint32("n", args[0])
			if err != nil {
				return nil, err
			}
			return fibonacci.Fibonacci(n), nil
		},
	},
	"helloNapi": {
		Name:   "helloNapi",
		Params: []Param{{Name: "input", Optional: true}},
		call: func(args []any) (any, error) {
			name, err := ToOptionalString("input", args[0])
			if err != nil {
				return nil, err
			}
			return playground.Greeting(name), nil
		},
	},
	"plus100": {
		Name:   "plus100",
		Params: []Param{{Name: "input"}},
		call: func(args []any) (any, error) {
			v, err := ToUint32("input", args[0])
			if err != nil {
				return nil, err
			}
			return playground.Plus100(v)
		},
	},
	"getArrayLength": {
		Name:   "getArrayLength",
		Params: []Param{{Name: "arr"}},
		call: func(args []any) (any, error) {
			arr, err := ToArray("arr", args[0])
			if err != nil {
				return nil, err
			}
			return playground.ArrayLength(arr), nil
		},
	},
}

// Names returns the exported host names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Exports))
	for name := range Exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke calls the exported function name with host arguments.
func Invoke(name string, args []any) (any, error) {
	exp, ok := Exports[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}

	required := 0
	for _, p := range exp.Params {
		if !p.Optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(exp.Params) {
		return nil, apperrors.NewValidationError(name, "expected %d to %d arguments, got %d", required, len(exp.Params), len(args))
	}

	full := make([]any, len(exp.Params))
	copy(full, args)
	return exp.call(full)
}
