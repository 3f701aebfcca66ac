package testutil

import (
	"context"
	"fmt"
	"strings"
)

// Call records one command execution seen by the RecordingRunner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a command line, for assertions.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// RecordingRunner is a types.CommandRunner fake that records every call and
// returns scripted results.
type RecordingRunner struct {
	Calls []Call

	// Outputs maps a command line (Call.String()) to the stdout Output
	// returns for it.
	Outputs map[string]string

	// Errors maps a command line to the error Run/Output return for it.
	Errors map[string]error

	// MissingBinaries lists names LookPath reports as not installed.
	MissingBinaries []string
}

// NewRecordingRunner creates an empty recording runner.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		Outputs: make(map[string]string),
		Errors:  make(map[string]error),
	}
}

func (r *RecordingRunner) record(name string, args ...string) Call {
	call := Call{Name: name, Args: args}
	r.Calls = append(r.Calls, call)
	return call
}

func (r *RecordingRunner) Run(ctx context.Context, name string, args ...string) error {
	call := r.record(name, args...)
	return r.Errors[call.String()]
}

func (r *RecordingRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := r.record(name, args...)
	if err := r.Errors[call.String()]; err != nil {
		return nil, err
	}
	return []byte(r.Outputs[call.String()]), nil
}

func (r *RecordingRunner) LookPath(name string) (string, error) {
	for _, missing := range r.MissingBinaries {
		if missing == name {
			return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every recorded call rendered as a command line.
func (r *RecordingRunner) CommandLines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		lines = append(lines, call.String())
	}
	return lines
}
