package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/intcode/driver"
	"github.com/nf/intcode/logging"
	"github.com/nf/intcode/program"
)

type WatchCommand struct {
	Inputs []int64 `short:"i" long:"input" description:"Input value, repeat for each value" value-name:"VALUE"`
	Args   struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var watchCommand WatchCommand

func (cmd *WatchCommand) Execute(args []string) error {
	name := filepath.Clean(cmd.Args.Program)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(name)); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-run:
			logging.Log(logging.LogLevelInfo, "watch: run", "program", name)
			runWatched(ctx, os.Stdout, name, cmd.Inputs)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == name && !ev.IsAttrib() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			logging.LogErr(err, "watch: watcher")
		}
	}
}

// runWatched runs the named program once with the given inputs, writing its
// outputs and how it stopped to w.
func runWatched(ctx context.Context, w io.Writer, name string, inputs []int64) {
	fmt.Fprintf(w, "== %s\n", filepath.Base(name))
	m, err := program.LoadFile(name)
	if err != nil {
		fmt.Fprintf(w, "load: %v\n", err)
		return
	}
	r := &driver.Runner{
		In:  driver.Values(inputs...),
		Out: func(v int64) { fmt.Fprintln(w, v) },
	}
	if err := r.Run(ctx, m); err != nil {
		fmt.Fprintf(w, "stopped: %v\n", err)
		return
	}
	fmt.Fprintf(w, "halted at %.4d\n", m.IP())
}

func init() {
	flagsparser.AddCommand(
		"watch",
		"Re-run a program when it changes",
		"Runs an Intcode program with the given inputs, and runs it again each time its file changes.",
		&watchCommand,
	)
}
