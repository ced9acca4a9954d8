package inspect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/arbor/syntax"
)

func parse(t *testing.T, src string) *syntax.Tree {
	t.Helper()
	tree, err := syntax.Parse("input.go", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestUnusedLocals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.inspect")
	defer teardown()
	//
	tree := parse(t, `package main

import "fmt"

func calculate(x int) int {
	unusedVar := 10
	result := x * 2
	temp := 5
	return result
}

func clean() {
	fmt.Println("nothing defined here")
}
`)
	findings := UnusedLocals(BuildIndex(tree))
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, have %d: %v", len(findings), findings)
	}
	f := findings[0]
	if f.Func != "calculate" {
		t.Errorf("finding names the wrong function: %q", f.Func)
	}
	if f.Loc.Line != 5 {
		t.Errorf("finding points at line %d, function is on line 5", f.Loc.Line)
	}
	if !reflect.DeepEqual(f.Unused, []string{"temp", "unusedVar"}) {
		t.Errorf("expected [temp unusedVar] (sorted), have %v", f.Unused)
	}
	t.Logf("finding: %s", f)
}

func TestUnusedLocalsRoles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.inspect")
	defer teardown()
	//
	// written-only names count as unused, op-assign and ++ count as use,
	// blank and selector parts are ignored
	tree := parse(t, `package main

func roles(items []int) int {
	var sink int
	sink = 1
	sum := 0
	for _, v := range items {
		sum += v
	}
	count := 0
	count++
	return sum
}
`)
	findings := UnusedLocals(BuildIndex(tree))
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, have %d: %v", len(findings), findings)
	}
	if !reflect.DeepEqual(findings[0].Unused, []string{"sink"}) {
		t.Errorf("expected only [sink], have %v", findings[0].Unused)
	}
}

func TestUnusedParams(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.inspect")
	defer teardown()
	//
	tree := parse(t, `package main

func ignore(a, b int) int {
	return a
}
`)
	findings := UnusedLocals(BuildIndex(tree))
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, have %d", len(findings))
	}
	if !reflect.DeepEqual(findings[0].Unused, []string{"b"}) {
		t.Errorf("expected unused parameter [b], have %v", findings[0].Unused)
	}
}

func TestDocgen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.inspect")
	defer teardown()
	//
	tree := parse(t, `package main

// add returns the sum of its arguments.
func add(a, b int) int {
	return a + b
}

func undocumented() {}
`)
	md, err := Docgen(tree)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", md)
	for _, want := range []string{
		"# Code Documentation",
		"## Function: `add`",
		"func add(a, b int) int",
		"add returns the sum of its arguments.",
		"## Function: `undocumented`",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q", want)
		}
	}
	if strings.Contains(md, "return a + b") {
		t.Errorf("function bodies do not belong into the documentation")
	}
}

func TestStructure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.inspect")
	defer teardown()
	//
	tree := parse(t, `package main

func f() int {
	return 1
}
`)
	s := Extract(tree)
	if len(s.Nodes) == 0 {
		t.Fatal("no nodes extracted")
	}
	if s.Nodes[0].NodeType != "File" || s.Nodes[0].Label != "package main" {
		t.Errorf("root node is %+v", s.Nodes[0])
	}
	if len(s.Connections) != len(s.Nodes)-1 {
		t.Errorf("a tree over %d nodes needs %d edges, have %d",
			len(s.Nodes), len(s.Nodes)-1, len(s.Connections))
	}
	for i, n := range s.Nodes {
		if n.ID != i {
			t.Fatalf("IDs are not pre-order indices: node %d has ID %d", i, n.ID)
		}
	}
	for _, c := range s.Connections {
		if c.From >= c.To {
			t.Errorf("edge %v violates pre-order (parents come first)", c)
		}
	}
}
