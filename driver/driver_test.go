package driver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nf/intcode/intcode"
)

func load(t *testing.T, prog ...int64) *intcode.Machine {
	t.Helper()
	m, err := intcode.Load(prog)
	require.NoError(t, err)
	return m
}

func TestCollect(t *testing.T) {
	for _, c := range []struct {
		name   string
		prog   []int64
		inputs []int64
		want   []int64
	}{
		{"identity", []int64{3, 0, 4, 0, 99}, []int64{7}, []int64{7}},
		{"no io", []int64{1, 0, 0, 0, 99}, nil, nil},
		{"triple", []int64{3, 9, 1002, 9, 3, 9, 4, 9, 99, 0}, []int64{5}, []int64{15}},
		{"sum", []int64{3, 11, 3, 12, 1, 11, 12, 13, 4, 13, 99, 0, 0, 0}, []int64{20, 22}, []int64{42}},
		{"several outputs", []int64{104, 1, 104, 2, 104, 3, 99}, nil, []int64{1, 2, 3}},
	} {
		t.Run(c.name, func(t *testing.T) {
			m := load(t, c.prog...)
			got, err := Collect(context.Background(), m, c.inputs...)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
			assert.Equal(t, intcode.Halted{}, m.State())
		})
	}
}

func TestRunError(t *testing.T) {
	m := load(t, 104, 9, 5)
	out, err := Collect(context.Background(), m)
	assert.Equal(t, []int64{9}, out)

	var ierr intcode.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, intcode.Error{Code: intcode.UnexpectedOpcode, Value: 5, Op: 5, Addr: 2}, ierr)
	assert.Equal(t, intcode.Errored{Err: ierr}, m.State())
}

func TestRunOutOfInput(t *testing.T) {
	m := load(t, 3, 0, 3, 1, 99)
	_, err := Collect(context.Background(), m, 1)
	require.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, intcode.AwaitingInput{Addr: 1}, m.State())

	// The machine stays parked and can be driven further.
	r := &Runner{In: Values(2)}
	require.NoError(t, r.Run(context.Background(), m))
	assert.Equal(t, int64(1), m.Read(0))
	assert.Equal(t, int64(2), m.Read(1))
}

func TestRunNilInput(t *testing.T) {
	m := load(t, 3, 0, 99)
	err := (&Runner{}).Run(context.Background(), m)
	assert.ErrorIs(t, err, ErrNoInput)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := load(t, 99)
	err := (&Runner{}).Run(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, intcode.Resumable{}, m.State())
}

func TestRunCancelBetweenOutputs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out []int64
	r := &Runner{Out: func(v int64) {
		out = append(out, v)
		cancel()
	}}
	m := load(t, 104, 1, 104, 2, 99)
	err := r.Run(ctx, m)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{1}, out)
}

func TestRunUnloaded(t *testing.T) {
	assert.Panics(t, func() { (&Runner{}).Run(context.Background(), intcode.New()) })
}

func TestInputFunc(t *testing.T) {
	boom := errors.New("boom")
	m := load(t, 3, 0, 99)
	r := &Runner{In: InputFunc(func() (int64, error) { return 0, boom })}
	assert.ErrorIs(t, r.Run(context.Background(), m), boom)
}

func TestLines(t *testing.T) {
	in := Lines(strings.NewReader("1\n\n  -2 \n3"))
	for _, want := range []int64{1, -2, 3} {
		v, err := in.Next()
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := in.Next()
	assert.ErrorIs(t, err, ErrNoInput)

	_, err = Lines(strings.NewReader("\nx\n")).Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestValues(t *testing.T) {
	in := Values(4, 5)
	v, err := in.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)
	v, err = in.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
	_, err = in.Next()
	assert.ErrorIs(t, err, ErrNoInput)
}
