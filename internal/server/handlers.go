package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/fibbridge/internal/errors"
	"github.com/agbru/fibbridge/internal/logging"
	"github.com/agbru/fibbridge/internal/native"
)

// FibResponse is the body of a successful /fib request.
type FibResponse struct {
	N          uint64 `json:"n"`
	Algo       string `json:"algo"`
	Result     string `json:"result"`
	Digits     int    `json:"digits"`
	DurationMS int64  `json:"duration_ms"`
}

// CallRequest is the body of a /call request.
type CallRequest struct {
	Args []any `json:"args"`
}

// CallResponse carries either the result or the error of a /call request.
type CallResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status     string   `json:"status"`
	Uptime     string   `json:"uptime"`
	CPUPercent float64  `json:"cpu_percent"`
	MemPercent float64  `json:"mem_percent"`
	Backends   []string `json:"backends"`
	Functions  []string `json:"functions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) defaultAlgo() string {
	if algo := s.cfg.DefaultAlgo; algo != "" && algo != "all" {
		return algo
	}
	if names := s.factory.List(); len(names) > 0 {
		for _, n := range names {
			if n == "big" {
				return n
			}
		}
		return names[0]
	}
	return ""
}

func (s *Server) handleFibonacci(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "server.fib")
	defer span.End()

	q := r.URL.Query()
	n, err := strconv.ParseUint(q.Get("n"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "n must be a non-negative integer"})
		return
	}
	if n > s.cfg.Security.MaxNValue {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "n exceeds the maximum of " + strconv.FormatUint(s.cfg.Security.MaxNValue, 10),
		})
		return
	}

	algo := q.Get("algo")
	if algo == "" {
		algo = s.defaultAlgo()
	}
	calc, err := s.factory.Get(algo)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	span.SetAttributes(attribute.Int64("fibonacci.n", int64(n)), attribute.String("fibonacci.algo", algo))

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := calc.Calculate(ctx, nil, 0, n, s.cfg.Options)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		code := http.StatusInternalServerError
		outcome := "error"
		if apperrors.IsContextError(err) {
			code = http.StatusGatewayTimeout
			outcome = "timeout"
		}
		s.metrics.ObserveCalculation(algo, outcome)
		s.logger.Error("calculation failed", err, logging.Uint64("n", n), logging.String("algo", algo))
		writeJSON(w, code, errorResponse{Error: err.Error()})
		return
	}
	s.metrics.ObserveCalculation(algo, "ok")

	text := result.String()
	writeJSON(w, http.StatusOK, FibResponse{
		N:          n,
		Algo:       algo,
		Result:     text,
		Digits:     len(text),
		DurationMS: elapsed.Milliseconds(),
	})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx, span := tracer.Start(r.Context(), "server.call")
	defer span.End()
	span.SetAttributes(attribute.String("native.function", name))

	if _, ok := native.Exports[name]; !ok {
		s.metrics.ObserveNativeCall(name, "error")
		writeJSON(w, http.StatusNotFound, CallResponse{Error: fmt.Sprintf("%v: %q", native.ErrUnknownFunction, name)})
		return
	}

	var req CallRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, CallResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	var (
		result any
		err    error
	)
	if name == "fibonacci" {
		result, err = s.callFibonacci(ctx, req.Args)
	} else {
		result, err = native.Invoke(name, req.Args)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		code := http.StatusInternalServerError
		outcome := "error"
		var ve apperrors.ValidationError
		switch {
		case apperrors.IsContextError(err):
			code = http.StatusGatewayTimeout
			outcome = "timeout"
		case errors.Is(err, native.ErrUnknownFunction):
			code = http.StatusNotFound
		case errors.As(err, &ve):
			code = http.StatusBadRequest
		}
		s.metrics.ObserveNativeCall(name, outcome)
		writeJSON(w, code, CallResponse{Error: err.Error()})
		return
	}
	s.metrics.ObserveNativeCall(name, "ok")
	writeJSON(w, http.StatusOK, CallResponse{Result: result})
}

// callFibonacci serves the exported fibonacci function on a cancellable
// backend, so a request that times out stops computing. The result is the
// same decimal string native.Invoke would return.
func (s *Server) callFibonacci(ctx context.Context, args []any) (any, error) {
	if len(args) != 1 {
		return nil, apperrors.NewValidationError("fibonacci", "expected 1 to 1 arguments, got %d", len(args))
	}
	n, err := native.ToUint32("n", args[0])
	if err != nil {
		return nil, err
	}
	if uint64(n) > s.cfg.Security.MaxNValue {
		return nil, apperrors.NewValidationError("n", "n exceeds the maximum of %d", s.cfg.Security.MaxNValue)
	}
	calc, err := s.factory.Get(s.defaultAlgo())
	if err != nil {
		return nil, err
	}
	v, err := calc.Calculate(ctx, nil, 0, uint64(n), s.cfg.Options)
	if err != nil {
		return nil, err
	}
	return v.String(), nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	stats := s.sampler()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Uptime:     time.Since(s.startedAt).Round(time.Second).String(),
		CPUPercent: stats.CPUPercent,
		MemPercent: stats.MemPercent,
		Backends:   s.factory.List(),
		Functions:  native.Names(),
	})
}
