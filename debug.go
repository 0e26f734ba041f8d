package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/intcode/intcode"
	"github.com/nf/intcode/logging"
	"github.com/nf/intcode/program"
)

type DebugCommand struct {
	Args struct {
		Program string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var debugCommand DebugCommand

func (cmd *DebugCommand) Execute(args []string) error {
	d := newDebugView()
	s, err := newSession(cmd.Args.Program, d.log)
	if err != nil {
		return err
	}
	d.s = s
	logging.SetOutput(d.log)
	defer logging.Setup(opts.LogLevel)
	d.update()
	return d.app.Run()
}

func init() {
	flagsparser.AddCommand(
		"debug",
		"Step through a program",
		"Opens an interactive debugger for an Intcode program. Type help for a list of commands.",
		&debugCommand,
	)
}

var debugCommands = []string{
	"step", "s",
	"continue", "c",
	"in", "i",
	"break", "b",
	"watch", "w",
	"unwatch",
	"restart", "r",
	"help", "h",
	"exit", "q",
}

const debugHelp = `commands:
  s, step          execute one instruction, or take a pending output
  c, continue      run until a breakpoint, input request, halt or error
  i, in VALUE      provide VALUE to a pending input request
  b, break [ADDR]  stop before executing ADDR (no ADDR clears)
  w, watch ADDR    show the value at ADDR
  unwatch          clear watches
  r, restart       reload the program and start again
  q, exit          quit`

// session holds a machine under the control of the debugger.
type session struct {
	name    string
	m       *intcode.Machine
	out     []int64
	brk     int // -1 for none
	watches []int
	log     io.Writer
}

func newSession(name string, log io.Writer) (*session, error) {
	s := &session{name: name, brk: -1, log: log}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) restart() error {
	m, err := program.LoadFile(s.name)
	if err != nil {
		return err
	}
	s.m, s.out = m, nil
	return nil
}

func (s *session) logf(format string, args ...any) {
	fmt.Fprintf(s.log, format+"\n", args...)
}

// command executes one debugger command and reports whether the debugger
// should exit.
func (s *session) command(line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "":
	case "s", "step":
		s.step()
	case "c", "continue":
		s.cont()
	case "i", "in":
		v, ok := parseValue(arg)
		if !ok {
			s.logf("invalid value %q", arg)
			return
		}
		if _, ok := s.m.State().(intcode.AwaitingInput); !ok {
			s.logf("not waiting for input (%v)", s.m.State())
			return
		}
		s.m.ProvideInput(v)
		s.logf("input %d", v)
	case "b", "break":
		if arg == "" {
			s.brk = -1
			s.logf("cleared break")
			return
		}
		addr, ok := parseAddr(arg)
		if !ok {
			s.logf("invalid addr %q", arg)
			return
		}
		s.brk = addr
		s.logf("set break %.4d", addr)
	case "w", "watch":
		addr, ok := parseAddr(arg)
		if !ok {
			s.logf("invalid addr %q", arg)
			return
		}
		s.watches = append(s.watches, addr)
		s.logf("watching %.4d", addr)
	case "unwatch":
		s.watches = nil
		s.logf("cleared watches")
	case "r", "restart":
		if err := s.restart(); err != nil {
			s.logf("restart: %v", err)
			return
		}
		s.logf("restarted %s", s.name)
	case "h", "help":
		s.logf("%s", debugHelp)
	case "q", "exit":
		return true
	default:
		s.logf("unknown command %q (try help)", cmd)
	}
	return false
}

// step advances the machine by one instruction, or consumes the pending
// output. It reports whether the machine can be stepped again.
func (s *session) step() bool {
	switch st := s.m.State().(type) {
	case intcode.Resumable:
		s.m.Step()
		switch st := s.m.State().(type) {
		case intcode.Halted:
			s.logf("halted at %.4d", s.m.IP())
		case intcode.Errored:
			s.logf("%v", st.Err)
		}
		return !intcode.Terminal(s.m.State())
	case intcode.Outputting:
		v := s.m.TakeOutput()
		s.out = append(s.out, v)
		s.logf("output %d", v)
		return true
	case intcode.AwaitingInput:
		s.logf("waiting for input for %.4d (use: in VALUE)", st.Addr)
	default:
		s.logf("machine %v (use: restart)", st)
	}
	return false
}

func (s *session) cont() {
	for s.step() {
		if _, ok := s.m.State().(intcode.Resumable); ok && s.m.IP() == s.brk {
			s.logf("break at %.4d", s.brk)
			return
		}
		if _, ok := s.m.State().(intcode.AwaitingInput); ok {
			s.step()
			return
		}
	}
}

func (s *session) stateText() string {
	text, _ := intcode.Disassemble(s.m, s.m.IP())
	return fmt.Sprintf("%.4d %-24s %s\nout: %v\n",
		s.m.IP(), text, repr.String(s.m.State()), s.out)
}

func (s *session) watchText() string {
	var b strings.Builder
	if s.brk >= 0 {
		fmt.Fprintf(&b, "[%.4d] brk!\n", s.brk)
	}
	for _, addr := range s.watches {
		fmt.Fprintf(&b, "[%.4d] %d\n", addr, s.m.Read(addr))
	}
	return b.String()
}

func parseAddr(s string) (int, bool) {
	addr, err := strconv.Atoi(s)
	if err != nil || addr < 0 || addr >= intcode.Capacity {
		return 0, false
	}
	return addr, true
}

type debugView struct {
	s *session

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application
}

func newDebugView() *debugView {
	d := &debugView{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if t == "" || strings.Contains(t, " ") {
			return nil
		}
		for _, c := range debugCommands {
			if len(c) > 1 && strings.HasPrefix(c, t) {
				entries = append(entries, c)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		d.input.SetText("")
		if d.s.command(cmd) {
			d.app.Stop()
			return
		}
		d.update()
	})
	return d
}

// update redraws the state and watch panes. It must be called from the
// application's event loop, or before it starts.
func (d *debugView) update() {
	switch d.s.m.State().(type) {
	case intcode.AwaitingInput, intcode.Outputting:
		d.state.SetTextColor(tcell.ColorYellow)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case intcode.Halted, intcode.Errored:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	default:
		d.state.SetTextColor(tcell.ColorBlack)
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	}
	d.state.SetText(d.s.stateText())
	d.watch.SetText(d.s.watchText())
}
