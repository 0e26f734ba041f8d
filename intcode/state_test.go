package intcode

import "testing"

func TestStateString(t *testing.T) {
	for _, c := range []struct {
		s    State
		want string
		term bool
	}{
		{Unloaded{}, "unloaded", false},
		{Resumable{}, "resumable", false},
		{AwaitingInput{Addr: 3}, "awaiting input for 3", false},
		{Outputting{Value: -9}, "outputting -9", false},
		{Halted{}, "halted", true},
		{Errored{Err: Error{Code: AddressOutOfRange, Value: 2048, Op: Out, Addr: 7}},
			"errored: address out of range 2048 executing OUT at 0007", true},
	} {
		if g := c.s.String(); g != c.want {
			t.Errorf("String() = %q, want %q", g, c.want)
		}
		if g := Terminal(c.s); g != c.term {
			t.Errorf("Terminal(%v) = %v, want %v", c.s, g, c.term)
		}
	}
}
