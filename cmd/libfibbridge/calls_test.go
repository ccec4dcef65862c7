package main

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/fibbridge/internal/errors"
)

func TestCallString(t *testing.T) {
	got, err := callString("fibonacci", uint32(50))
	if err != nil || got != "12586269025" {
		t.Errorf("fibonacci(50) = %q, %v", got, err)
	}

	got, err = callString("helloNapi", nil)
	if err != nil || got != "Hello, napi-rs!" {
		t.Errorf("helloNapi(nil) = %q, %v", got, err)
	}

	got, err = callString("helloNapi", "C")
	if err != nil || got != "Hello, C!" {
		t.Errorf("helloNapi(C) = %q, %v", got, err)
	}

	if _, err := callString("plus100", uint32(1)); err == nil {
		t.Error("plus100 through callString should report a type mismatch")
	}
}

func TestCallUint32(t *testing.T) {
	got, err := callUint32("plus100", uint32(23))
	if err != nil || got != 123 {
		t.Errorf("plus100(23) = %d, %v", got, err)
	}

	_, err = callUint32("plus100", uint32(4294967295))
	var verr apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("plus100(max) error = %v, want ValidationError", err)
	}
}
