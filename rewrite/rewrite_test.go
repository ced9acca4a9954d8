package rewrite

import (
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

func formatted(t *testing.T, tree *syntax.Tree) string {
	t.Helper()
	code, err := tree.Format()
	if err != nil {
		t.Fatal(err)
	}
	return code
}

func TestReplaceConstants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

func prices() (int, float64, string) {
	return 100, 2.5, "100"
}
`)
	n, err := ReplaceConstants{New: 42}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 rewrites, have %d", n)
	}
	code := formatted(t, tree)
	t.Logf("\n%s", code)
	if !strings.Contains(code, "return 42, 42,") {
		t.Errorf("numeric literals not replaced:\n%s", code)
	}
	if !strings.Contains(code, `"100"`) {
		t.Errorf("string literal must stay untouched:\n%s", code)
	}
}

func TestReplaceConstantsSelective(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

var a, b = 7, 8
`)
	old := 7.0
	n, err := ReplaceConstants{Old: &old, New: 42}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 rewrite, have %d", n)
	}
	code := formatted(t, tree)
	if !strings.Contains(code, "42, 8") {
		t.Errorf("expected only the 7 to change:\n%s", code)
	}
}

func TestInjectEntryLog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

func greet() {
	println("hi")
}

func main() {
	greet()
}
`)
	n, err := InjectEntryLog{}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 instrumented functions, have %d", n)
	}
	code := formatted(t, tree)
	t.Logf("\n%s", code)
	if !strings.Contains(code, `log.Printf("entering function: greet")`) {
		t.Errorf("greet not instrumented:\n%s", code)
	}
	if !strings.Contains(code, `log.Printf("entering function: main")`) {
		t.Errorf("main not instrumented:\n%s", code)
	}
	if !strings.Contains(code, `"log"`) {
		t.Errorf("log import not added:\n%s", code)
	}
	// the log call must come before the original body
	if strings.Index(code, "entering function: greet") > strings.Index(code, `println("hi")`) {
		t.Errorf("log statement not at the top of the body:\n%s", code)
	}
}

func TestRenameFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

import "fmt"

func helper() int { return 1 }

func main() {
	fmt.Println(helper())
}
`)
	n, err := RenameFunction{Old: "helper", New: "assist"}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 { // declaration plus one call site
		t.Errorf("expected 2 renamed identifiers, have %d", n)
	}
	code := formatted(t, tree)
	if strings.Contains(code, "helper") {
		t.Errorf("old name still present:\n%s", code)
	}
	if !strings.Contains(code, "func assist()") || !strings.Contains(code, "assist()") {
		t.Errorf("new name missing:\n%s", code)
	}
	// fmt.Println must keep its selector untouched
	if !strings.Contains(code, "fmt.Println") {
		t.Errorf("selector expression damaged:\n%s", code)
	}
}

func TestRenameFunctionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

func a() {}
func b() {}
`)
	if _, err := (RenameFunction{Old: "a", New: "b"}).Apply(tree); err == nil {
		t.Errorf("expected a clash error renaming a to b")
	}
	if _, err := (RenameFunction{Old: "nosuch", New: "c"}).Apply(tree); err == nil {
		t.Errorf("expected an error renaming a missing function")
	}
	if _, err := (RenameFunction{Old: "a", New: "not-an-ident"}).Apply(tree); err == nil {
		t.Errorf("expected an error for an invalid new name")
	}
}

func TestRemoveStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

func work() int {
	println("a")
	x := 1
	println("b")
	return x
}
`)
	n, err := RemoveStatements{Kind: "expr"}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed statements, have %d", n)
	}
	code := formatted(t, tree)
	if strings.Contains(code, "println") {
		t.Errorf("expression statements not removed:\n%s", code)
	}
	if !strings.Contains(code, "return x") {
		t.Errorf("return statement must survive:\n%s", code)
	}
}

func TestGuardRiskyCalls(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

import "strconv"

func read(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
`)
	n, err := GuardRiskyCalls{Guards: DefaultGuards()}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 guarded call, have %d", n)
	}
	code := formatted(t, tree)
	t.Logf("\n%s", code)
	if !strings.Contains(code, "n, err := strconv.Atoi(s)") {
		t.Errorf("dropped error not resurrected:\n%s", code)
	}
	if !strings.Contains(code, "if err != nil {") {
		t.Errorf("error check missing:\n%s", code)
	}
	if !strings.Contains(code, `log.Printf("strconv.Atoi failed: %v", err)`) {
		t.Errorf("failure logging missing:\n%s", code)
	}
	if !strings.Contains(code, "n = 0") {
		t.Errorf("fallback assignment missing:\n%s", code)
	}
}

func TestGuardRiskyCallStatement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

import "encoding/json"

func decode(raw []byte, v interface{}) {
	json.Unmarshal(raw, v)
}
`)
	n, err := GuardRiskyCalls{Guards: DefaultGuards()}.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 guarded call, have %d", n)
	}
	code := formatted(t, tree)
	if !strings.Contains(code, "if err := json.Unmarshal(raw, v); err != nil {") {
		t.Errorf("call statement not wrapped:\n%s", code)
	}
}

func TestPipeline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	tree := parse(t, `package main

func answer() int {
	return 7
}
`)
	p := NewPipeline(ReplaceConstants{New: 42}, InjectEntryLog{})
	counts, err := p.Apply(tree)
	if err != nil {
		t.Fatal(err)
	}
	if counts["replace_constants"] != 1 || counts["add_logging"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
	code := formatted(t, tree)
	if !strings.Contains(code, "return 42") || !strings.Contains(code, "entering function: answer") {
		t.Errorf("pipeline did not apply both rules:\n%s", code)
	}
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.rewrite")
	defer teardown()
	//
	infos := Available()
	if len(infos) != len(registry) {
		t.Fatalf("expected %d registered rules, have %d", len(registry), len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].Name >= infos[i].Name {
			t.Errorf("rules not sorted: %q before %q", infos[i-1].Name, infos[i].Name)
		}
	}
	rule, err := Lookup("replace_constants", Params{"new_value": 7.0})
	if err != nil {
		t.Fatal(err)
	}
	if rule.Name() != "replace_constants" {
		t.Errorf("lookup returned the wrong rule: %s", rule.Name())
	}
	if _, err := Lookup("no_such_rule", nil); err == nil {
		t.Errorf("expected an error for an unknown operation")
	}
	if _, err := Lookup("rename_function", nil); err == nil {
		t.Errorf("expected an error for missing rename parameters")
	}
}
