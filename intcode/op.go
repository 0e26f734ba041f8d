package intcode

import (
	"fmt"
	"strings"
)

// Op represents an Intcode opcode, the low two decimal digits of an
// instruction word.
type Op int64

const (
	Add  Op = 1
	Mul  Op = 2
	In   Op = 3
	Out  Op = 4
	Halt Op = 99
)

func (o Op) String() string {
	switch o {
	case Add:
		return "ADD"
	case Mul:
		return "MUL"
	case In:
		return "IN"
	case Out:
		return "OUT"
	case Halt:
		return "HALT"
	}
	return fmt.Sprintf("???(%d)", int64(o))
}

// Params returns the number of parameters taken by the opcode, and false if
// the opcode is not valid.
func (o Op) Params() (int, bool) {
	switch o {
	case Add, Mul:
		return 3, true
	case In, Out:
		return 1, true
	case Halt:
		return 0, true
	}
	return 0, false
}

// Mode is a parameter mode.
type Mode int64

const (
	Position  Mode = 0
	Immediate Mode = 1
)

// Disassemble renders the instruction at addr and returns the address of the
// instruction that follows it. Positional parameters are rendered as
// addresses and immediate parameters with a leading '#'. Words that do not
// decode to an instruction are rendered as "??? word".
func Disassemble(m *Machine, addr int) (string, int) {
	if addr < 0 || addr >= Capacity {
		return "", addr
	}
	word := m.mem[addr]
	op := Op(word % 100)
	n, ok := op.Params()
	if word < 0 || !ok || addr+n >= Capacity {
		return fmt.Sprintf("??? %d", word), addr + 1
	}
	var b strings.Builder
	b.WriteString(op.String())
	modes := word / 100
	for i := 1; i <= n; i++ {
		md := Mode(modes % 10)
		modes /= 10
		b.WriteByte(' ')
		switch md {
		case Position:
		case Immediate:
			b.WriteByte('#')
		default:
			fmt.Fprintf(&b, "%d?", int64(md))
		}
		fmt.Fprintf(&b, "%d", m.mem[addr+i])
	}
	return b.String(), addr + n + 1
}
