package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/nf/intcode/driver"
	"github.com/nf/intcode/program"
)

type RunCommand struct {
	Inputs []int64 `short:"i" long:"input" description:"Input value, repeat for each value (default: prompt, or read stdin when it is not a terminal)" value-name:"VALUE"`
	Dump   string  `long:"dump" description:"Write a memory dump to FILE when execution stops" value-name:"FILE"`
	Trace  bool    `long:"trace" description:"Print each instruction to stderr before executing it"`
	Args   struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

func (cmd *RunCommand) Execute(args []string) error {
	m, err := program.LoadFile(cmd.Args.Program)
	if err != nil {
		return err
	}
	if cmd.Trace {
		m.Trace = newTracer(os.Stderr, m)
	}

	var (
		in  driver.Input
		out io.Writer = os.Stdout
	)
	switch {
	case len(cmd.Inputs) > 0:
		in = driver.Values(cmd.Inputs...)
	case isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		p, err := newPrompt()
		if err != nil {
			return err
		}
		defer p.Close()
		in, out = p, p.Stdout()
	default:
		in = driver.Lines(os.Stdin)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &driver.Runner{
		In:  in,
		Out: func(v int64) { fmt.Fprintln(out, v) },
	}
	runErr := r.Run(ctx, m)
	if cmd.Dump != "" {
		if err := program.DumpFile(cmd.Dump, m); err != nil {
			return err
		}
	}
	return machineExit(runErr)
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run a program",
		"Runs an Intcode program, printing each output value on its own line.",
		&runCommand,
	)
}
