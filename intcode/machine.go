// Package intcode provides a resumable Intcode machine.
//
// A Machine executes instructions from its fixed-size memory until it reaches
// a suspension point: an input request, an output value, a halt, or an error.
// The caller inspects State to learn why execution stopped, satisfies the
// request with ProvideInput or TakeOutput, and calls Resume again.
//
// Calling an operation in a state that does not permit it is a programming
// error and panics. Errors caused by the program itself are recorded as an
// Errored state and never panic.
package intcode

import (
	"errors"
	"fmt"
	"iter"
)

// Capacity is the number of cells in a Machine's memory.
const Capacity = 1024

// ErrProgramTooLarge is returned by Load if the program does not fit in
// memory.
var ErrProgramTooLarge = errors.New("program too large")

// Machine is an Intcode CPU with Capacity cells of memory.
type Machine struct {
	mem   [Capacity]int64
	ip    int
	state State

	// Trace, if set, is called with the instruction pointer and the raw
	// instruction word before each instruction is executed.
	Trace TraceFunc
}

// TraceFunc observes instructions as they are executed.
type TraceFunc func(ip int, word int64)

// New returns an Unloaded machine with zeroed memory.
func New() *Machine {
	return &Machine{state: Unloaded{}}
}

// Load returns a Resumable machine with the given program copied to the start
// of its memory.
func Load(program []int64) (*Machine, error) {
	m := New()
	if err := m.Load(program); err != nil {
		return nil, err
	}
	return m, nil
}

// Load copies program to the start of memory and makes the machine Resumable.
// It panics if the machine is not Unloaded.
func (m *Machine) Load(program []int64) error {
	if _, ok := m.State().(Unloaded); !ok {
		panic(fmt.Sprintf("intcode: Load called in state %v", m.State()))
	}
	if len(program) > Capacity {
		return fmt.Errorf("%w: %d cells, capacity is %d", ErrProgramTooLarge, len(program), Capacity)
	}
	copy(m.mem[:], program)
	m.state = Resumable{}
	return nil
}

// State reports the machine's current lifecycle state.
func (m *Machine) State() State {
	if m.state == nil {
		return Unloaded{}
	}
	return m.state
}

// IP returns the instruction pointer.
func (m *Machine) IP() int { return m.ip }

// Read returns the value at addr. It panics if addr is outside of memory.
func (m *Machine) Read(addr int) int64 {
	if addr < 0 || addr >= Capacity {
		panic(fmt.Sprintf("intcode: Read of address %d outside of memory", addr))
	}
	return m.mem[addr]
}

// Cells yields every address and its value in ascending address order.
func (m *Machine) Cells() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		for addr, v := range m.mem {
			if !yield(addr, v) {
				return
			}
		}
	}
}

// Snapshot returns a copy of memory.
func (m *Machine) Snapshot() []int64 {
	s := make([]int64, Capacity)
	copy(s, m.mem[:])
	return s
}

// Resume executes instructions until the machine leaves the Resumable state.
// It panics if the machine is not Resumable.
func (m *Machine) Resume() {
	m.mustBe("Resume", Resumable{})
	for {
		m.Step()
		if _, ok := m.state.(Resumable); !ok {
			return
		}
	}
}

// ProvideInput stores v at the address the pending input instruction named
// and makes the machine Resumable. It panics if the machine is not
// AwaitingInput.
func (m *Machine) ProvideInput(v int64) {
	s, ok := m.State().(AwaitingInput)
	if !ok {
		panic(fmt.Sprintf("intcode: ProvideInput called in state %v", m.State()))
	}
	m.mem[s.Addr] = v
	m.state = Resumable{}
}

// TakeOutput returns the pending output value and makes the machine
// Resumable. It panics if the machine is not Outputting.
func (m *Machine) TakeOutput() int64 {
	s, ok := m.State().(Outputting)
	if !ok {
		panic(fmt.Sprintf("intcode: TakeOutput called in state %v", m.State()))
	}
	m.state = Resumable{}
	return s.Value
}

func (m *Machine) mustBe(op string, want State) {
	if got := m.State(); got != want {
		panic(fmt.Sprintf("intcode: %s called in state %v", op, got))
	}
}
