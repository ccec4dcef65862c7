package main

import (
	"bytes"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibbridge/internal/errors"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		input    string
		wantCode int
		want     []string
	}{
		{"hello default", []string{"hello"}, "", apperrors.ExitSuccess, []string{"Hello, napi-rs!"}},
		{"hello name", []string{"hello", "Go"}, "", apperrors.ExitSuccess, []string{"Hello, Go!"}},
		{
			"arrays", []string{"arrays"}, "7\nx\n12\n", apperrors.ExitSuccess,
			[]string{
				"Please enter an array index.",
				"index is not divisible by 4, 3, or 2\nThe value of the element at index 2 is: 3",
				"not a valid index",
				"index is divisible by 4\nThe value of the element at index 2 is: 3",
			},
		},
		{
			"fibonacci", []string{"fibonacci"}, "10\n-1\n100\n", apperrors.ExitSuccess,
			[]string{
				"Calc n-th fibonacci number",
				"Enter n:",
				"The 10-th value of fibonacci is: 55",
				"not a valid n",
				"The 100-th value of fibonacci is: 354224848179261915075",
			},
		},
		{
			"shadowing", []string{"shadowing"}, "", apperrors.ExitSuccess,
			[]string{"first-inner scope is: 6", "second-inner scope is: 10", "The value of x is: 5", "spaces length is: 3"},
		},
		{"no args", nil, "", apperrors.ExitErrorConfig, nil},
		{"unknown", []string{"nope"}, "", apperrors.ExitErrorConfig, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			code := run(tt.args, strings.NewReader(tt.input), &out, &errOut)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, errOut.String())
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}
