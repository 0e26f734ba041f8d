package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nf/intcode/driver"
	"github.com/nf/intcode/intcode"
)

func writeProgram(t *testing.T, text string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, os.WriteFile(name, []byte(text), 0644))
	return name
}

func TestParseValue(t *testing.T) {
	for in, want := range map[string]int64{"7": 7, " -3 ": -3, "0\n": 0} {
		v, ok := parseValue(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, v, in)
	}
	for _, in := range []string{"", " ", "x", "1.5", "0x10"} {
		_, ok := parseValue(in)
		assert.False(t, ok, in)
	}
}

func TestParseAddr(t *testing.T) {
	addr, ok := parseAddr("12")
	assert.True(t, ok)
	assert.Equal(t, 12, addr)
	for _, in := range []string{"-1", "1024", "x", ""} {
		_, ok := parseAddr(in)
		assert.False(t, ok, in)
	}
}

func TestTracer(t *testing.T) {
	m, err := intcode.Load([]int64{1002, 4, 3, 4, 33})
	require.NoError(t, err)
	var buf bytes.Buffer
	m.Trace = newTracer(&buf, m)
	m.Resume()
	assert.Equal(t, "0000   1002  MUL 4 #3 4\n0004     99  HALT\n", buf.String())
}

func TestWriteDump(t *testing.T) {
	m, err := intcode.Load([]int64{3, 5, 99})
	require.NoError(t, err)
	_, err = driver.Collect(context.Background(), m, 42)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeDump(&buf, m, 3, true))
	assert.Equal(t, "3,5,99,0,0,42\n", buf.String())

	buf.Reset()
	require.NoError(t, writeDump(&buf, m, 3, false))
	assert.True(t, strings.HasPrefix(buf.String(), "0: 3\n1: 5\n2: 99\n3: 0\n4: 0\n5: 42\n"))
	assert.Equal(t, intcode.Capacity, strings.Count(buf.String(), "\n"))

	buf.Reset()
	empty, err := intcode.Load([]int64{99, 0, 0})
	require.NoError(t, err)
	require.NoError(t, writeDump(&buf, empty, 3, true))
	assert.Equal(t, "99,0,0\n", buf.String())
}

func TestRunWatched(t *testing.T) {
	ctx := context.Background()
	for _, c := range []struct {
		name   string
		text   string
		inputs []int64
		want   []string
	}{
		{"identity", "3,0,4,0,99\n", []int64{9}, []string{"9", "halted at 0005"}},
		{"error", "104,1,5", nil, []string{"1", "stopped: unexpected opcode 5 executing ???(5) at 0002"}},
		{"no input", "3,0,99", nil, []string{"stopped: input for address 0 at 0002: no more input"}},
		{"parse error", "1,x", nil, nil},
	} {
		t.Run(c.name, func(t *testing.T) {
			name := writeProgram(t, c.text)
			var buf bytes.Buffer
			runWatched(ctx, &buf, name, c.inputs)
			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			require.NotEmpty(t, lines)
			assert.Equal(t, "== prog.txt", lines[0])
			if c.want == nil {
				require.Len(t, lines, 2)
				assert.True(t, strings.HasPrefix(lines[1], "load: "), lines[1])
				return
			}
			assert.Equal(t, c.want, lines[1:])
		})
	}
}

func TestSession(t *testing.T) {
	name := writeProgram(t, "3,9,1002,9,3,9,4,9,99,0")
	var log bytes.Buffer
	s, err := newSession(name, &log)
	require.NoError(t, err)

	assert.False(t, s.command("c"))
	assert.Equal(t, intcode.AwaitingInput{Addr: 9}, s.m.State())
	assert.Contains(t, log.String(), "waiting for input for 0009")

	s.command("in x")
	assert.Contains(t, log.String(), `invalid value "x"`)
	s.command("in 5")
	assert.Equal(t, intcode.Resumable{}, s.m.State())
	s.command("in 6")
	assert.Contains(t, log.String(), "not waiting for input")

	s.command("watch 9")
	s.command("break 6")
	assert.Equal(t, "[0006] brk!\n[0009] 5\n", s.watchText())

	s.command("continue")
	assert.Equal(t, 6, s.m.IP())
	assert.Contains(t, log.String(), "break at 0006")
	assert.Contains(t, s.stateText(), "OUT 9")
	assert.Contains(t, s.stateText(), "intcode.Resumable{}")

	s.command("s")
	assert.Equal(t, intcode.Outputting{Value: 15}, s.m.State())
	s.command("s")
	assert.Equal(t, []int64{15}, s.out)
	s.command("c")
	assert.Equal(t, intcode.Halted{}, s.m.State())
	assert.Contains(t, log.String(), "halted at 0009")
	s.command("s")
	assert.Contains(t, log.String(), "machine halted (use: restart)")

	s.command("r")
	assert.Equal(t, intcode.Resumable{}, s.m.State())
	assert.Nil(t, s.out)
	s.command("b")
	s.command("unwatch")
	assert.Equal(t, "", s.watchText())

	s.command("b 5000")
	assert.Contains(t, log.String(), `invalid addr "5000"`)
	s.command("bogus")
	assert.Contains(t, log.String(), `unknown command "bogus"`)
	s.command("help")
	assert.Contains(t, log.String(), "commands:")
	assert.True(t, s.command("exit"))
}

func TestSessionError(t *testing.T) {
	var log bytes.Buffer
	s, err := newSession(writeProgram(t, "1,-1,0,0,99"), &log)
	require.NoError(t, err)
	s.command("c")
	assert.IsType(t, intcode.Errored{}, s.m.State())
	assert.Contains(t, log.String(), "unexpected negative number -1 executing ADD at 0000")

	_, err = newSession(filepath.Join(t.TempDir(), "missing"), &log)
	assert.Error(t, err)
}

func TestMachineExit(t *testing.T) {
	m, err := intcode.Load([]int64{1, -1, 0, 0, 99})
	require.NoError(t, err)
	_, runErr := driver.Collect(context.Background(), m)
	require.Error(t, runErr)

	var exit exitError
	require.ErrorAs(t, machineExit(runErr), &exit)
	assert.Equal(t, exitError(1), exit)
	assert.Equal(t, "exit status 1", exit.Error())

	assert.NoError(t, machineExit(nil))
	assert.ErrorIs(t, machineExit(driver.ErrNoInput), driver.ErrNoInput)
}
