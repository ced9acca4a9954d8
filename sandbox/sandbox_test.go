package sandbox

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLimitsCheck(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	l := DefaultLimits()
	if err := l.Check([]byte(`fmt.Println("hi")`)); err != nil {
		t.Errorf("harmless snippet rejected: %v", err)
	}
	err := l.Check([]byte(`package main

import "os/exec"

func main() {
	exec.Command("true").Run()
}
`))
	if err == nil {
		t.Fatal("snippet importing os/exec must be rejected")
	}
	t.Logf("rejected with: %v", err)
	if !strings.Contains(err.Error(), "os/exec") {
		t.Errorf("rejection should name the import, is: %v", err)
	}
	if err := l.Check([]byte("func broken( {}")); err == nil {
		t.Errorf("unparsable snippet must be rejected")
	}
}

func TestCompleteProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	program, err := completeProgram([]byte(`fmt.Println("hi")`))
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", program)
	if !strings.Contains(program, "package main") {
		t.Errorf("snippet not completed to package main:\n%s", program)
	}
	if !strings.Contains(program, "func main()") {
		t.Errorf("snippet not wrapped into func main:\n%s", program)
	}
	if !strings.Contains(program, `"fmt"`) {
		t.Errorf("missing import not filled in:\n%s", program)
	}
}

func needGoTool(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not available")
	}
}

func TestRun(t *testing.T) {
	needGoTool(t)
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	r := NewRunner(DefaultLimits())
	res, err := r.Run(context.Background(), []byte(`fmt.Println("hello from the sandbox")`))
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 0 {
		t.Errorf("expected exit 0, got %d (stderr: %s)", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stdout, "hello from the sandbox") {
		t.Errorf("stdout is %q", res.Stdout)
	}
	if res.TimedOut {
		t.Errorf("run unexpectedly reported a timeout")
	}
}

func TestRunNonzeroExit(t *testing.T) {
	needGoTool(t)
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	r := NewRunner(DefaultLimits())
	res, err := r.Run(context.Background(), []byte(`os.Exit(3)`))
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 3 {
		t.Errorf("expected exit 3, got %d", res.ExitCode)
	}
}

func TestRunTimeout(t *testing.T) {
	needGoTool(t)
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	limits := DefaultLimits()
	limits.Timeout = 2 * time.Second
	r := NewRunner(limits)
	// an endless loop must not keep Run from returning once the deadline
	// hits, even though the snippet never exits on its own
	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run(context.Background(), []byte(`for {
	time.Sleep(time.Second)
}`))
		done <- outcome{res, err}
	}()
	var o outcome
	select {
	case o = <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("Run did not return after the deadline expired")
	}
	if o.err != nil {
		t.Fatal(o.err)
	}
	if !o.res.TimedOut {
		t.Errorf("endless loop should have timed out, result: %+v", o.res)
	}
}

func TestRunStream(t *testing.T) {
	needGoTool(t)
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	var mx sync.Mutex
	var lines []string
	r := NewRunner(DefaultLimits())
	res, err := r.RunStream(context.Background(), []byte(`for i := 1; i <= 3; i++ {
	fmt.Println("line", i)
}`), func(stream, line string) {
		mx.Lock()
		defer mx.Unlock()
		lines = append(lines, stream+": "+line)
	})
	if err != nil {
		t.Fatal(err)
	}
	mx.Lock()
	defer mx.Unlock()
	if len(lines) != 3 {
		t.Fatalf("expected 3 streamed lines, have %v", lines)
	}
	if lines[0] != "stdout: line 1" {
		t.Errorf("first line is %q", lines[0])
	}
	if !strings.Contains(res.Stdout, "line 3") {
		t.Errorf("captured stdout is %q", res.Stdout)
	}
}

func TestRunStreamNeedsCallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.sandbox")
	defer teardown()
	//
	r := NewRunner(DefaultLimits())
	if _, err := r.RunStream(context.Background(), []byte(`fmt.Println("x")`), nil); err == nil {
		t.Errorf("RunStream without a callback must fail")
	}
}
