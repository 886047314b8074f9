package tools

import (
	"context"
	"strings"
)

// call is one recorded invocation of fakeRunner.
type call struct {
	name string
	args []string
}

// fakeRunner replays results in order and records its calls.
type fakeRunner struct {
	results []Result
	err     error
	calls   []call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.calls = append(f.calls, call{name: name, args: args})

	if f.err != nil {
		return Result{}, f.err
	}

	res := f.results[0]
	f.results = f.results[1:]

	return res, nil
}

func (c call) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}
