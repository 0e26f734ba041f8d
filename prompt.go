package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/nf/intcode/driver"
)

// prompt asks the user for each input value.
type prompt struct {
	rl *readline.Instance
}

func newPrompt() (*prompt, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32minput⟩\033[0m ",
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &prompt{rl: rl}, nil
}

func (p *prompt) Next() (int64, error) {
	for {
		line, err := p.rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			return 0, fmt.Errorf("%w: %v", driver.ErrNoInput, err)
		}
		v, ok := parseValue(line)
		if !ok {
			fmt.Fprintf(p.rl.Stderr(), "not an integer: %q\n", strings.TrimSpace(line))
			continue
		}
		return v, nil
	}
}

func (p *prompt) Stdout() io.Writer { return p.rl.Stdout() }

func (p *prompt) Close() error { return p.rl.Close() }

// parseValue parses a decimal input value, ignoring surrounding space.
func parseValue(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}
