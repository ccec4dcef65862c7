package fibonacci

import "context"

// ProgressUpdate is a progress notification sent by a calculator running
// under the orchestrator.
type ProgressUpdate struct {
	// CalculatorIndex identifies the calculator among those running together.
	CalculatorIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a calculation.
type ProgressCallback func(progress float64)

// iterate runs step exactly steps times. Every interval steps it checks ctx
// for cancellation and reports the completed fraction through reporter.
func iterate(ctx context.Context, reporter ProgressCallback, steps, interval uint64, step func()) error {
	if interval == 0 {
		interval = DefaultCheckInterval
	}
	for done := uint64(0); done < steps; {
		chunk := interval
		if steps-done < chunk {
			chunk = steps - done
		}
		for i := uint64(0); i < chunk; i++ {
			step()
		}
		done += chunk

		if err := ctx.Err(); err != nil {
			return err
		}
		if reporter != nil {
			reporter(float64(done) / float64(steps))
		}
	}
	return nil
}
