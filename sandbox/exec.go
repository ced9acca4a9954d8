package sandbox

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/tools/imports"

	"github.com/npillmayer/arbor/syntax"
)

// Result reports the outcome of one snippet run.
type Result struct {
	Stdout    string        `json:"stdout"`
	Stderr    string        `json:"stderr"`
	ExitCode  int           `json:"exit"`
	TimedOut  bool          `json:"timed_out"`
	Truncated bool          `json:"truncated"`
	Duration  time.Duration `json:"-"`
}

// Runner executes snippets under the configured limits.
type Runner struct {
	Limits Limits
	GoTool string // path of the go tool, defaults to "go"
}

// NewRunner creates a runner with the given limits.
func NewRunner(l Limits) *Runner {
	return &Runner{Limits: l, GoTool: "go"}
}

// Run executes a snippet and returns the captured output. The context
// bounds the run in addition to the configured timeout; whichever ends
// first wins. A deadline hit kills the process and is reported as a
// timeout in the result, not as an error.
func (r *Runner) Run(ctx context.Context, src []byte) (*Result, error) {
	return r.run(ctx, src, nil)
}

// LineFunc receives one line of output as it is produced; stream is either
// "stdout" or "stderr".
type LineFunc func(stream, line string)

// RunStream is Run with line-wise delivery of output while the snippet is
// executing. The returned result carries the (capped) captured output as
// well.
func (r *Runner) RunStream(ctx context.Context, src []byte, emit LineFunc) (*Result, error) {
	if emit == nil {
		return nil, errors.New("RunStream needs a line callback")
	}
	return r.run(ctx, src, emit)
}

func (r *Runner) run(ctx context.Context, src []byte, emit LineFunc) (*Result, error) {
	if err := r.Limits.Check(src); err != nil {
		return nil, err
	}
	program, err := completeProgram(src)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "arbor-sandbox-")
	if err != nil {
		return nil, fmt.Errorf("sandbox workspace: %w", err)
	}
	defer os.RemoveAll(dir)
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte(program), 0o644); err != nil {
		return nil, fmt.Errorf("sandbox workspace: %w", err)
	}
	gomod := "module sandbox\n\ngo 1.18\n"
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		return nil, fmt.Errorf("sandbox workspace: %w", err)
	}
	timeout := r.Limits.Timeout
	if timeout <= 0 {
		timeout = DefaultLimits().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	gotool := r.GoTool
	if gotool == "" {
		gotool = "go"
	}
	cmd := exec.Command(gotool, "run", ".")
	cmd.Dir = dir
	// The go tool forks the compiled snippet; a deadline kill must reach the
	// whole process group, or the orphaned snippet keeps running and holds
	// the output pipes open, blocking Wait indefinitely.
	setPgid(cmd)
	stdout := &capWriter{max: r.Limits.MaxOutputBytes}
	stderr := &capWriter{max: r.Limits.MaxOutputBytes}
	start := time.Now()
	if emit == nil {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err = cmd.Start(); err == nil {
			err = waitOrKill(ctx, cmd, cmd.Wait)
		}
	} else {
		err = runStreaming(ctx, cmd, stdout, stderr, emit)
	}
	res := &Result{
		Stdout:    stdout.String(),
		Stderr:    stderr.String(),
		TimedOut:  ctx.Err() == context.DeadlineExceeded,
		Truncated: stdout.truncated || stderr.truncated,
		Duration:  time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil && !res.TimedOut {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("running snippet: %w", err)
		}
	}
	tracer().Infof("snippet ran %.2fs, exit %d", res.Duration.Seconds(), res.ExitCode)
	return res, nil
}

// waitOrKill awaits the command, killing its process group when the
// context expires first. The kill closes the output pipes, so wait comes
// back even for a snippet that never exits on its own.
func waitOrKill(ctx context.Context, cmd *exec.Cmd, wait func() error) error {
	done := make(chan error, 1)
	go func() { done <- wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		killGroup(cmd)
		return <-done
	}
}

// runStreaming wires the command's output through line scanners that both
// capture and emit.
func runStreaming(ctx context.Context, cmd *exec.Cmd, stdout, stderr *capWriter, emit LineFunc) error {
	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	var wg sync.WaitGroup
	forward := func(name string, pipe io.Reader, capture *capWriter) {
		defer wg.Done()
		scanner := bufio.NewScanner(pipe)
		for scanner.Scan() {
			line := scanner.Text()
			capture.Write([]byte(line + "\n"))
			emit(name, line)
		}
	}
	wg.Add(2)
	go forward("stdout", outPipe, stdout)
	go forward("stderr", errPipe, stderr)
	return waitOrKill(ctx, cmd, func() error {
		wg.Wait()
		return cmd.Wait()
	})
}

// completeProgram turns a snippet into a full main-package source file.
// Missing standard-library imports are filled in, so that `fmt.Println(…)`
// works as a one-line snippet.
func completeProgram(src []byte) (string, error) {
	t, err := syntax.ParseSnippet(src)
	if err != nil {
		return "", err
	}
	text, err := t.Format()
	if err != nil {
		return "", err
	}
	fixed, err := imports.Process("main.go", []byte(text), nil)
	if err != nil {
		return text, nil // run anyway, the compiler will complain precisely
	}
	return string(fixed), nil
}

// capWriter captures up to max bytes and swallows the rest.
type capWriter struct {
	buf       bytes.Buffer
	max       int
	truncated bool
}

func (w *capWriter) Write(p []byte) (int, error) {
	if w.max <= 0 {
		w.buf.Write(p)
		return len(p), nil
	}
	room := w.max - w.buf.Len()
	switch {
	case room <= 0:
		w.truncated = true
	case len(p) > room:
		w.buf.Write(p[:room])
		w.truncated = true
	default:
		w.buf.Write(p)
	}
	return len(p), nil
}

func (w *capWriter) String() string {
	return w.buf.String()
}
