// Package program reads Intcode programs from their text form and writes
// memory dumps of Intcode machines.
//
// A program is a list of decimal integers, each optionally preceded by '-',
// separated by commas. Newlines may appear anywhere, including inside an
// integer, and are ignored. A trailing comma is permitted.
package program

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/nf/intcode/intcode"
)

var (
	textLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Punct", Pattern: `,`},
	})

	parser = participle.MustBuild[listing](
		participle.Lexer(textLexer),
		participle.UseLookahead(2),
	)

	dropNewlines = runes.Remove(runes.Predicate(func(r rune) bool { return r == '\n' }))
)

type listing struct {
	Cells []cell `parser:"(@Int (\",\" @Int)* \",\"?)?"`
}

// cell captures an Int token as a base 10 integer.
type cell int64

func (c *cell) Capture(values []string) error {
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return err
	}
	*c = cell(v)
	return nil
}

// Parse reads a program from r. The name is used in error messages.
func Parse(name string, r io.Reader) ([]int64, error) {
	l, err := parser.Parse(name, transform.NewReader(r, dropNewlines))
	if err != nil {
		return nil, err
	}
	cells := make([]int64, len(l.Cells))
	for i, c := range l.Cells {
		cells[i] = int64(c)
	}
	return cells, nil
}

// ParseString reads a program from s.
func ParseString(s string) ([]int64, error) {
	return Parse("", strings.NewReader(s))
}

// ReadFile reads a program from the named file.
func ReadFile(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(name, f)
}

// LoadFile reads a program from the named file and loads it into a new
// machine.
func LoadFile(name string) (*intcode.Machine, error) {
	cells, err := ReadFile(name)
	if err != nil {
		return nil, err
	}
	m, err := intcode.Load(cells)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return m, nil
}

// Format returns the text form of a program, without a trailing newline.
func Format(cells []int64) string {
	var b strings.Builder
	for i, v := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
