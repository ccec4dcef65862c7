// Package orchestration runs several Fibonacci backends on the same index
// concurrently and checks that they agree. It knows nothing about terminals:
// display goes through the ProgressReporter and ResultPresenter interfaces.
package orchestration
