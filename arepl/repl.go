package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/arbor/inspect"
	"github.com/npillmayer/arbor/rewrite"
	"github.com/npillmayer/arbor/rewrite/selector"
	"github.com/npillmayer/arbor/sandbox"
	"github.com/npillmayer/arbor/syntax"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts an interactive CLI ("A.REPL"), where users load or type Go
// snippets and experiment with the tree: dump it, rewrite it, search it,
// run it. Intended as a sandbox for trying out rewrite rules before using
// them programmatically.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	loadf := flag.String("load", "", "Initial source file to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to AREPL") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("arbor> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		repl:   repl,
		runner: sandbox.NewRunner(sandbox.DefaultLimits()),
	}
	if *loadf != "" {
		if err := intp.load(*loadf); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	tree   *syntax.Tree
	runner *sandbox.Runner
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd := args[0]
		quit, err := intp.Execute(cmd, args[1:], line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute runs a single command. rest is the input line after the command
// word, for commands that take free-form source text.
func (intp *Intp) Execute(cmd string, args []string, line string) (bool, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		intp.help()
		return false, nil
	case "load":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: load <file>")
		}
		return false, intp.load(args[0])
	case "parse":
		if rest == "" {
			return false, fmt.Errorf("usage: parse <source text>")
		}
		t, err := syntax.ParseSnippet([]byte(rest))
		if err != nil {
			return false, err
		}
		intp.tree = t
		pterm.Info.Println("parsed")
		return false, nil
	case "code":
		t, err := intp.needTree()
		if err != nil {
			return false, err
		}
		code, err := t.Format()
		if err != nil {
			return false, err
		}
		pterm.Println(code)
		return false, nil
	case "dump":
		return false, intp.dump()
	case "rules":
		for _, info := range rewrite.Available() {
			pterm.Printf("%-20s %s\n", info.Name, info.Description)
			if len(info.Params) > 0 {
				pterm.Printf("%-20s params: %s\n", "", strings.Join(info.Params, ", "))
			}
		}
		return false, nil
	case "apply":
		if len(args) < 1 {
			return false, fmt.Errorf("usage: apply <rule> [key=value …]")
		}
		return false, intp.apply(args[0], args[1:])
	case "find":
		if rest == "" {
			return false, fmt.Errorf("usage: find <selector>")
		}
		return false, intp.find(rest)
	case "unused":
		t, err := intp.needTree()
		if err != nil {
			return false, err
		}
		findings := inspect.UnusedLocals(inspect.BuildIndex(t))
		if len(findings) == 0 {
			pterm.Info.Println("no unused variables")
			return false, nil
		}
		for _, f := range findings {
			pterm.Println(f.String())
		}
		return false, nil
	case "doc":
		t, err := intp.needTree()
		if err != nil {
			return false, err
		}
		md, err := inspect.Docgen(t)
		if err != nil {
			return false, err
		}
		pterm.Println(md)
		return false, nil
	case "run":
		return false, intp.run()
	}
	return false, fmt.Errorf("unknown command %q, try help", cmd)
}

func (intp *Intp) help() {
	pterm.Println(`load <file>            parse a source file
parse <source text>    parse a snippet given inline
code                   print the current tree as source text
dump                   display the current tree
rules                  list the available rewrite rules
apply <rule> [k=v …]   rewrite the current tree
find <selector>        find nodes, e.g. find call:fmt.Println,kind:ReturnStmt
unused                 report unused variables per function
doc                    generate Markdown documentation
run                    execute the current tree in the sandbox
quit                   leave`)
}

func (intp *Intp) needTree() (*syntax.Tree, error) {
	if intp.tree == nil {
		return nil, fmt.Errorf("no tree yet, use load or parse first")
	}
	return intp.tree, nil
}

func (intp *Intp) load(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	t, err := syntax.Parse(filename, src)
	if err != nil {
		return err
	}
	intp.tree = t
	pterm.Info.Printf("loaded %s, %d declaration(s)\n", filename, len(t.Root.Decls))
	return nil
}

// dump renders the current tree with pterm. Structure IDs are pre-order,
// so a parent always precedes its children and depths can be read off the
// edge list in one pass.
func (intp *Intp) dump() error {
	t, err := intp.needTree()
	if err != nil {
		return err
	}
	s := inspect.Extract(t)
	depth := make([]int, len(s.Nodes))
	for _, conn := range s.Connections {
		depth[conn.To] = depth[conn.From] + 1
	}
	ll := pterm.LeveledList{}
	for _, n := range s.Nodes {
		text := n.NodeType
		if n.Label != n.NodeType {
			text = fmt.Sprintf("%s %s", n.NodeType, n.Label)
		}
		ll = append(ll, pterm.LeveledListItem{Level: depth[n.ID], Text: text})
	}
	root := pterm.NewTreeFromLeveledList(ll)
	pterm.DefaultTree.WithRoot(root).Render()
	return nil
}

func (intp *Intp) apply(name string, kvs []string) error {
	t, err := intp.needTree()
	if err != nil {
		return err
	}
	params := rewrite.Params{}
	for _, kv := range kvs {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("parameter %q is not of the form key=value", kv)
		}
		if f, err := strconv.ParseFloat(parts[1], 64); err == nil {
			params[parts[0]] = f
		} else {
			params[parts[0]] = parts[1]
		}
	}
	rule, err := rewrite.Lookup(name, params)
	if err != nil {
		return err
	}
	count, err := rule.Apply(t)
	if err != nil {
		return err
	}
	pterm.Info.Printf("%s rewrote %d node(s)\n", name, count)
	return nil
}

func (intp *Intp) find(input string) error {
	t, err := intp.needTree()
	if err != nil {
		return err
	}
	sel, err := selector.Parse(input)
	if err != nil {
		return err
	}
	matches := selector.FindAll(t, sel)
	if len(matches) == 0 {
		pterm.Info.Println("no matches")
		return nil
	}
	for _, m := range matches {
		pterm.Printf("line %3d: %s\n", m.Loc.Line, syntax.NodeType(m.Node))
	}
	return nil
}

func (intp *Intp) run() error {
	t, err := intp.needTree()
	if err != nil {
		return err
	}
	code, err := t.Format()
	if err != nil {
		return err
	}
	res, err := intp.runner.RunStream(context.Background(), []byte(code),
		func(stream, line string) {
			if stream == "stderr" {
				pterm.Error.Println(line)
			} else {
				pterm.Println(line)
			}
		})
	if err != nil {
		return err
	}
	if res.TimedOut {
		pterm.Error.Println("execution timed out")
	}
	pterm.Info.Printf("exit %d\n", res.ExitCode)
	return nil
}
