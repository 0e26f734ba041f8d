package program

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nf/intcode/intcode"
)

// WriteDump writes every memory cell of m to w, one "address: value" line per
// cell in ascending address order.
func WriteDump(w io.Writer, m *intcode.Machine) error {
	bw := bufio.NewWriter(w)
	for addr, v := range m.Cells() {
		if _, err := fmt.Fprintf(bw, "%d: %d\n", addr, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DumpFile writes the memory dump of m to the named file.
func DumpFile(name string, m *intcode.Machine) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteDump(f, m)
}
