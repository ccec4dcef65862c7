// Package server is the HTTP host of fibbridge. It serves Fibonacci numbers
// computed by the registered backends, forwards JSON calls to the native
// function table, and exposes health and Prometheus endpoints.
//
// Routes:
//
//	GET  /fib?n=<index>&algo=<backend>
//	POST /call/{name}      body {"args": [...]}
//	GET  /health
//	GET  /metrics
package server
