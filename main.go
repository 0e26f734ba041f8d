// Command intcode executes Intcode programs.
//
// A program is a text file of comma-separated integers. The run subcommand
// executes it, reading input values from flags, an interactive prompt, or
// standard input, and printing output values one per line. The dump, debug
// and watch subcommands write memory dumps, step through execution, and
// re-run a program whenever its file changes.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/logging"
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" default:"none"`
}

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
)

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	flagsparser.CommandHandler = func(command flags.Commander, args []string) error {
		logging.Setup(opts.LogLevel)
		return command.Execute(args)
	}

	if _, err := flagsparser.Parse(); err != nil {
		var (
			flagsErr *flags.Error
			exit     exitError
		)
		switch {
		case errors.As(err, &flagsErr):
			if flagsErr.Type == flags.ErrHelp {
				fmt.Println(flagsErr.Message)
				os.Exit(0)
			}
			fmt.Fprintln(os.Stderr, flagsErr.Message)
			os.Exit(2)
		case errors.As(err, &exit):
			os.Exit(int(exit))
		default:
			log.Fatal(err)
		}
	}
}

// exitError is returned by a command that has already reported its failure
// and only needs the process to exit with the given status.
type exitError int

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// machineExit reports a machine fault and turns it into exit status 1.
// Other errors are returned unchanged.
func machineExit(err error) error {
	var merr intcode.Error
	if !errors.As(err, &merr) {
		return err
	}
	log.Print(merr)
	return exitError(1)
}
