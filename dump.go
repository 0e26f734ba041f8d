package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nf/intcode/driver"
	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/program"
)

type DumpCommand struct {
	Inputs  []int64 `short:"i" long:"input" description:"Input value, repeat for each value" value-name:"VALUE"`
	Output  string  `short:"o" long:"output" description:"Write to FILE instead of stdout" value-name:"FILE"`
	Program bool    `short:"p" long:"program" description:"Write memory as program text instead of one line per address"`
	Args    struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var dumpCommand DumpCommand

func (cmd *DumpCommand) Execute(args []string) (err error) {
	cells, err := program.ReadFile(cmd.Args.Program)
	if err != nil {
		return err
	}
	m, err := intcode.Load(cells)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cmd.Args.Program, err)
	}
	_, runErr := driver.Collect(context.Background(), m, cmd.Inputs...)

	var w io.Writer = os.Stdout
	if cmd.Output != "" {
		f, ferr := os.Create(cmd.Output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if err = writeDump(w, m, len(cells), cmd.Program); err != nil {
		return err
	}
	return machineExit(runErr)
}

// writeDump writes the memory of m to w. As program text, memory is written
// up to the end of the loaded program or the last non-zero cell, whichever
// is further.
func writeDump(w io.Writer, m *intcode.Machine, loaded int, asProgram bool) error {
	if !asProgram {
		return program.WriteDump(w, m)
	}
	mem := m.Snapshot()
	n := loaded
	for addr, v := range mem {
		if v != 0 && addr >= n {
			n = addr + 1
		}
	}
	_, err := fmt.Fprintln(w, program.Format(mem[:n]))
	return err
}

func init() {
	flagsparser.AddCommand(
		"dump",
		"Run a program and dump its memory",
		"Runs an Intcode program with the given inputs and writes its memory when execution stops. Output values are discarded.",
		&dumpCommand,
	)
}
