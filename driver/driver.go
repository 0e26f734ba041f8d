// Package driver runs Intcode machines to completion, feeding them input
// values and collecting their output values across suspension points.
package driver

import (
	"context"
	"fmt"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/logging"
)

// Runner drives a machine until it halts or stops on an error.
type Runner struct {
	// In supplies values to input instructions. A nil In fails the first
	// input request with ErrNoInput.
	In Input
	// Out, if set, receives each value produced by an output instruction.
	Out func(v int64)
}

// Run resumes m until it halts, returning nil, or until it stops on an
// error, returning the intcode.Error. It also stops if In fails or ctx is
// done. The machine must be Resumable, or parked on a suspension point.
func (r *Runner) Run(ctx context.Context, m *intcode.Machine) error {
	for {
		switch s := m.State().(type) {
		case intcode.Resumable:
			if err := ctx.Err(); err != nil {
				return err
			}
			m.Resume()
		case intcode.AwaitingInput:
			in := r.In
			if in == nil {
				in = Values()
			}
			v, err := in.Next()
			if err != nil {
				return fmt.Errorf("input for address %d at %.4d: %w", s.Addr, m.IP(), err)
			}
			logging.Log(logging.LogLevelDebug, "input", "addr", s.Addr, "value", v)
			m.ProvideInput(v)
		case intcode.Outputting:
			v := m.TakeOutput()
			logging.Log(logging.LogLevelDebug, "output", "value", v)
			if r.Out != nil {
				r.Out(v)
			}
		case intcode.Halted:
			logging.Log(logging.LogLevelDebug, "halted", "ip", m.IP())
			return nil
		case intcode.Errored:
			logging.Log(logging.LogLevelDebug, "errored", "ip", m.IP(), "error", s.Err)
			return s.Err
		default:
			panic(fmt.Sprintf("driver: Run called in state %v", s))
		}
	}
}

// Collect runs m with the given inputs and returns the values it output.
// On error the outputs produced so far are returned along with the error.
func Collect(ctx context.Context, m *intcode.Machine, inputs ...int64) ([]int64, error) {
	var out []int64
	r := &Runner{
		In:  Values(inputs...),
		Out: func(v int64) { out = append(out, v) },
	}
	err := r.Run(ctx, m)
	return out, err
}
