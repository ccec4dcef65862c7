package main

import (
	"fmt"
	"log"
	"os"

	"github.com/agbru/fibbridge/internal/logging"
	"github.com/agbru/fibbridge/internal/native"
)

// logger reports calls the host got a failure status for. The host only sees
// NULL or a non-zero return, so the reason goes to stderr.
var logger logging.Logger = logging.NewStdLoggerAdapter(log.New(os.Stderr, "libfibbridge: ", log.LstdFlags))

func callString(name string, args ...any) (string, error) {
	v, err := invoke(name, args)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s returned %T, want string", name, v)
	}
	return s, nil
}

func callUint32(name string, args ...any) (uint32, error) {
	v, err := invoke(name, args)
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint32)
	if !ok {
		return 0, fmt.Errorf("%s returned %T, want uint32", name, v)
	}
	return u, nil
}

func invoke(name string, args []any) (any, error) {
	v, err := native.Invoke(name, args)
	if err != nil {
		logger.Error("native call failed", err, logging.String("function", name))
	}
	return v, err
}
