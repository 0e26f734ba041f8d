package main

import (
	"fmt"
	"io"

	"github.com/nf/intcode/intcode"
)

// newTracer returns a TraceFunc that prints each instruction of m to w.
func newTracer(w io.Writer, m *intcode.Machine) intcode.TraceFunc {
	return func(ip int, word int64) {
		text, _ := intcode.Disassemble(m, ip)
		fmt.Fprintf(w, "%.4d %6d  %s\n", ip, word, text)
	}
}
