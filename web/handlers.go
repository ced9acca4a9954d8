package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"encoding/json"
	"errors"
	"go/token"
	"net/http"

	"github.com/npillmayer/arbor/inspect"
	"github.com/npillmayer/arbor/rewrite"
	"github.com/npillmayer/arbor/sandbox"
	"github.com/npillmayer/arbor/syntax"
	"github.com/npillmayer/arbor/syntax/astjson"
)

// API bundles the state behind the HTTP endpoints.
type API struct {
	cache  *parseCache
	runner *sandbox.Runner
}

// NewAPI creates the endpoint handlers for a configuration.
func NewAPI(cfg *Config) (*API, error) {
	if cfg == nil {
		cfg = Default()
	}
	cache, err := newParseCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &API{
		cache:  cache,
		runner: sandbox.NewRunner(cfg.Limits),
	}, nil
}

// --- Envelopes -------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		tracer().Errorf("writing response: %v", err)
	}
}

func writeOK(w http.ResponseWriter, payload map[string]interface{}) {
	payload["success"] = true
	writeJSON(w, http.StatusOK, payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	tracer().Infof("request failed: %v", err)
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("request body is not valid JSON"))
		return false
	}
	return true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return false
	}
	return true
}

// --- Request shapes --------------------------------------------------------

type codeRequest struct {
	Code string `json:"code"`
}

type unparseRequest struct {
	AST interface{} `json:"ast"`
}

type transformRequest struct {
	Code      string         `json:"code,omitempty"`
	AST       interface{}    `json:"ast,omitempty"`
	Operation string         `json:"operation"`
	Params    rewrite.Params `json:"params,omitempty"`
}

// --- Handlers --------------------------------------------------------------

// handleParse answers POST /api/parse with the encoded tree and its
// structure view.
func (api *API) handleParse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req codeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	p, err := api.cache.parse(req.Code)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"ast":       p.AST,
		"structure": p.Structure,
	})
}

// handleUnparse answers POST /api/unparse with source text regenerated
// from an encoded tree.
func (api *API) handleUnparse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req unparseRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.AST == nil {
		writeError(w, http.StatusBadRequest, errors.New("missing 'ast' in request"))
		return
	}
	f, err := astjson.DecodeFile(req.AST)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t := &syntax.Tree{Name: "request.go", Fset: token.NewFileSet(), Root: f}
	code, err := t.Format()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, map[string]interface{}{"code": code})
}

// handleTransform answers POST /api/transform. The tree to rewrite comes
// either as source text or as an encoded tree; the operation name selects
// a registered rule, params parameterize it. The response carries both the
// rewritten tree and its source text.
func (api *API) handleTransform(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req transformRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	rule, err := rewrite.Lookup(req.Operation, req.Params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var t *syntax.Tree
	switch {
	case req.Code != "":
		t, err = syntax.ParseSnippet([]byte(req.Code))
	case req.AST != nil:
		f, ferr := astjson.DecodeFile(req.AST)
		if ferr != nil {
			writeError(w, http.StatusBadRequest, ferr)
			return
		}
		t = &syntax.Tree{Name: "request.go", Fset: token.NewFileSet(), Root: f}
	default:
		err = errors.New("request needs 'code' or 'ast'")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	count, err := rule.Apply(t)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	enc, err := astjson.EncodeTree(t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	code, err := t.Format()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"ast":     enc,
		"code":    code,
		"applied": count,
	})
}

// handleTransforms answers GET /api/transforms with the registered rules.
func (api *API) handleTransforms(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeOK(w, map[string]interface{}{"transforms": rewrite.Available()})
}

// handleValidate answers POST /api/validate with a syntax check verdict.
// An invalid snippet is a regular 200 answer, not an error.
func (api *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req codeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	valid, message := syntax.Validate([]byte(req.Code))
	writeOK(w, map[string]interface{}{
		"valid":   valid,
		"message": message,
	})
}

// handleUnused answers POST /api/unused with per-function unused variable
// findings.
func (api *API) handleUnused(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req codeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	t, err := syntax.ParseSnippet([]byte(req.Code))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	findings := inspect.UnusedLocals(inspect.BuildIndex(t))
	out := make([]map[string]interface{}, 0, len(findings))
	for _, f := range findings {
		out = append(out, map[string]interface{}{
			"function": f.Func,
			"line":     f.Loc.Line,
			"unused":   f.Unused,
		})
	}
	writeOK(w, map[string]interface{}{"findings": out})
}

// handleDoc answers POST /api/doc with generated Markdown documentation.
func (api *API) handleDoc(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req codeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	t, err := syntax.ParseSnippet([]byte(req.Code))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	md, err := inspect.Docgen(t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeOK(w, map[string]interface{}{"markdown": md})
}

// handleExecute answers POST /api/execute by running the snippet in the
// sandbox. Rejected snippets (syntax errors, banned imports) are a 400;
// snippets that run and fail are a regular answer with their exit code.
func (api *API) handleExecute(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req codeRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	res, err := api.runner.Run(r.Context(), []byte(req.Code))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"stdout":      res.Stdout,
		"stderr":      res.Stderr,
		"exit":        res.ExitCode,
		"timed_out":   res.TimedOut,
		"truncated":   res.Truncated,
		"duration_ms": res.Duration.Milliseconds(),
	})
}

// handleLimits answers GET /api/execution-limits with the sandbox bounds.
func (api *API) handleLimits(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	l := api.runner.Limits
	writeOK(w, map[string]interface{}{
		"limits": map[string]interface{}{
			"timeout_seconds":  l.Timeout.Seconds(),
			"max_output_bytes": l.MaxOutputBytes,
			"banned_imports":   l.BannedImports,
		},
	})
}
