package intcode

import (
	"fmt"
	"math"
)

// Step executes the instruction at the instruction pointer. Afterwards the
// machine is Resumable, or parked on the suspension point the instruction
// reached. It panics if the machine is not Resumable.
func (m *Machine) Step() {
	m.mustBe("Step", Resumable{})

	var (
		opIP = m.ip
		op   Op
	)
	defer func() {
		if e := recover(); e != nil {
			if f, ok := e.(fault); ok {
				m.state = Errored{Err: Error{
					Code:  f.code,
					Value: f.value,
					Op:    op,
					Addr:  opIP,
				}}
			} else {
				panic(e)
			}
		}
	}()

	word := m.fetch()
	if m.Trace != nil {
		m.Trace(opIP, word)
	}
	if word < 0 {
		panic(fault{UnexpectedNegativeNumber, word})
	}
	op = Op(word % 100)
	d := decoder{m: m, modes: word / 100}

	switch op {
	case Add, Mul:
		a, b := d.value(), d.value()
		dst := d.addr()
		var v int64
		if op == Add {
			v = add(a, b)
		} else {
			v = mul(a, b)
		}
		m.mem[dst] = v
	case In:
		m.state = AwaitingInput{Addr: d.addr()}
	case Out:
		m.state = Outputting{Value: d.value()}
	case Halt:
		m.state = Halted{}
	default:
		panic(fault{UnexpectedOpcode, int64(op)})
	}
}

// fetch reads the word at the instruction pointer and advances it.
func (m *Machine) fetch() int64 {
	if m.ip >= Capacity {
		panic(fault{AddressOutOfRange, int64(m.ip)})
	}
	w := m.mem[m.ip]
	m.ip++
	return w
}

// decoder reads the parameters of one instruction, consuming one mode digit
// per parameter, least significant first.
type decoder struct {
	m     *Machine
	modes int64
}

func (d *decoder) mode() Mode {
	md := Mode(d.modes % 10)
	d.modes /= 10
	return md
}

// value reads a parameter whose operand is read.
func (d *decoder) value() int64 {
	md := d.mode()
	raw := d.m.fetch()
	switch md {
	case Position:
		return d.m.mem[address(raw)]
	case Immediate:
		return raw
	default:
		panic(fault{UnexpectedParameterMode, int64(md)})
	}
}

// addr reads a parameter naming the address an instruction writes to.
// Only positional mode is valid.
func (d *decoder) addr() int {
	md := d.mode()
	raw := d.m.fetch()
	if md != Position {
		panic(fault{UnexpectedParameterMode, int64(md)})
	}
	return address(raw)
}

func address(v int64) int {
	if v < 0 {
		panic(fault{UnexpectedNegativeNumber, v})
	}
	if v >= Capacity {
		panic(fault{AddressOutOfRange, v})
	}
	return int(v)
}

func add(a, b int64) int64 {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		panic(fault{Overflow, a})
	}
	return a + b
}

func mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(fault{Overflow, a})
	}
	return p
}

// fault carries an Error out of the instruction being executed.
type fault struct {
	code  ErrorCode
	value int64
}

// Error is recorded in the Errored state when execution cannot continue.
type Error struct {
	Code  ErrorCode
	Value int64 // the offending opcode, mode, address or operand
	Op    Op
	Addr  int // address of the instruction word
}

func (e Error) Error() string {
	return fmt.Sprintf("%s %d executing %s at %.4d", e.Code, e.Value, e.Op, e.Addr)
}

// ErrorCode signifies the condition that stopped execution.
type ErrorCode byte

const (
	UnexpectedOpcode ErrorCode = iota + 1
	UnexpectedParameterMode
	UnexpectedNegativeNumber
	AddressOutOfRange
	Overflow
)

func (c ErrorCode) String() string {
	if s, ok := map[ErrorCode]string{
		UnexpectedOpcode:         "unexpected opcode",
		UnexpectedParameterMode:  "unexpected parameter mode",
		UnexpectedNegativeNumber: "unexpected negative number",
		AddressOutOfRange:        "address out of range",
		Overflow:                 "integer overflow",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", byte(c))
}
