package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"

	"github.com/npillmayer/arbor/syntax"
)

// Rule is a single tree-rewriting rule. Apply walks the tree, possibly
// mutating it, and reports how many rewrites took place.
type Rule interface {
	Name() string
	Describe() string
	Apply(t *syntax.Tree) (int, error)
}

// Pipeline applies rules in order.
type Pipeline struct {
	rules []Rule
}

// NewPipeline creates a pipeline from rules, applied in the given order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: rules}
}

// Apply runs every rule of the pipeline over the tree and returns the
// per-rule rewrite counts. The first failing rule aborts the pipeline.
func (p *Pipeline) Apply(t *syntax.Tree) (map[string]int, error) {
	counts := make(map[string]int)
	for _, r := range p.rules {
		n, err := r.Apply(t)
		if err != nil {
			return counts, fmt.Errorf("rule %s: %w", r.Name(), err)
		}
		tracer().Infof("rule %s rewrote %d node(s)", r.Name(), n)
		counts[r.Name()] += n
	}
	return counts, nil
}

// --- Rule registry ---------------------------------------------------------

// Params carries rule parameters as decoded from a JSON request or parsed
// from REPL arguments.
type Params map[string]interface{}

// Info describes a registered rule for discovery by clients.
type Info struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      []string `json:"params"`
}

type factory func(p Params) (Rule, error)

type entry struct {
	description string
	params      []string
	make        factory
}

var registry = map[string]entry{
	"replace_constants": {
		description: "replace numeric literals (all of them, or those equal to old_value) with new_value",
		params:      []string{"old_value", "new_value"},
		make:        makeReplaceConstants,
	},
	"add_logging": {
		description: "insert a log statement at the top of every function body",
		params:      []string{"log_message"},
		make:        makeInjectEntryLog,
	},
	"rename_function": {
		description: "rename a top-level function and its call sites",
		params:      []string{"old_name", "new_name"},
		make:        makeRenameFunction,
	},
	"remove_statements": {
		description: "remove all statements of a given kind",
		params:      []string{"stmt_type"},
		make:        makeRemoveStatements,
	},
	"guard_risky_calls": {
		description: "wrap calls with dropped error results into an error check with logging",
		params:      []string{"callees"},
		make:        makeGuardRiskyCalls,
	},
}

// Lookup builds a registered rule from wire parameters. Unknown operation
// names are an error naming the operation.
func Lookup(op string, p Params) (Rule, error) {
	e, ok := registry[op]
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", op)
	}
	return e.make(p)
}

// Available lists all registered rules, sorted by name.
func Available() []Info {
	infos := make([]Info, 0, len(registry))
	for name, e := range registry {
		infos = append(infos, Info{Name: name, Description: e.description, Params: e.params})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// --- Parameter helpers -----------------------------------------------------

func stringParam(p Params, key string) (string, bool) {
	if p == nil {
		return "", false
	}
	s, ok := p[key].(string)
	return s, ok
}

func numberParam(p Params, key string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	switch x := p[key].(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func stringsParam(p Params, key string) []string {
	if p == nil {
		return nil
	}
	switch x := p[key].(type) {
	case []string:
		return x
	case []interface{}:
		var out []string
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
