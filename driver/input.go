package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned by an Input that has no more values.
var ErrNoInput = errors.New("no more input")

// Input supplies values to a machine's input instructions.
type Input interface {
	Next() (int64, error)
}

// InputFunc adapts a function to the Input interface.
type InputFunc func() (int64, error)

func (f InputFunc) Next() (int64, error) { return f() }

// Values returns an Input that yields vs in order.
func Values(vs ...int64) Input {
	return &values{vs: vs}
}

type values struct {
	vs []int64
}

func (q *values) Next() (int64, error) {
	if len(q.vs) == 0 {
		return 0, ErrNoInput
	}
	v := q.vs[0]
	q.vs = q.vs[1:]
	return v, nil
}

// Lines returns an Input that reads one decimal integer per line from r.
// Blank lines are skipped. At end of input it returns ErrNoInput.
func Lines(r io.Reader) Input {
	return &lines{s: bufio.NewScanner(r)}
}

type lines struct {
	s *bufio.Scanner
	n int
}

func (l *lines) Next() (int64, error) {
	for l.s.Scan() {
		l.n++
		text := strings.TrimSpace(l.s.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", l.n, err)
		}
		return v, nil
	}
	if err := l.s.Err(); err != nil {
		return 0, err
	}
	return 0, ErrNoInput
}
