package model

import "io"

// ExecOpts contains options for executing a command in a sandbox.
type ExecOpts struct {
	// WorkingDir is the directory to run the command in (optional).
	WorkingDir string
	// Env contains additional environment variables for this exec.
	Env map[string]string
	// Stdin is the input stream for the command (optional). It is copied until
	// EOF or until the command ends, whatever happens first.
	Stdin io.Reader
	// Stdout receives the command stdout as it's produced (optional).
	Stdout io.Writer
	// Stderr receives the command stderr as it's produced (optional).
	Stderr io.Writer
	// Tty allocates a pseudo-TTY for the command (useful for interactive shells).
	Tty bool
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	// ExitCode is the exit code of the executed command, only known after the
	// output stream has ended.
	ExitCode int
	// Output is the combined stdout and stderr in the order they were produced.
	Output string
	Stdout string
	Stderr string
}

// Succeeded returns true if the command exited with 0.
func (r ExecResult) Succeeded() bool { return r.ExitCode == 0 }
