package intcode

import "fmt"

// State is the lifecycle state of a Machine. It is one of Unloaded,
// Resumable, AwaitingInput, Outputting, Halted or Errored.
type State interface {
	fmt.Stringer
	state()
}

// Unloaded is the state of a machine whose memory has not been loaded.
type Unloaded struct{}

// Resumable is the state of a machine that is ready to execute.
type Resumable struct{}

// AwaitingInput is the state of a machine parked on an input instruction.
// The value passed to ProvideInput is written to Addr.
type AwaitingInput struct {
	Addr int
}

// Outputting is the state of a machine parked on an output instruction.
type Outputting struct {
	Value int64
}

// Halted is the state of a machine that executed a halt instruction.
type Halted struct{}

// Errored is the state of a machine that stopped on an Error.
type Errored struct {
	Err Error
}

func (Unloaded) state()      {}
func (Resumable) state()     {}
func (AwaitingInput) state() {}
func (Outputting) state()    {}
func (Halted) state()        {}
func (Errored) state()       {}

func (Unloaded) String() string        { return "unloaded" }
func (Resumable) String() string       { return "resumable" }
func (s AwaitingInput) String() string { return fmt.Sprintf("awaiting input for %d", s.Addr) }
func (s Outputting) String() string    { return fmt.Sprintf("outputting %d", s.Value) }
func (Halted) String() string          { return "halted" }
func (s Errored) String() string       { return "errored: " + s.Err.Error() }

// Terminal reports whether s is Halted or Errored.
func Terminal(s State) bool {
	switch s.(type) {
	case Halted, Errored:
		return true
	}
	return false
}
