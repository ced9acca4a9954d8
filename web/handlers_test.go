package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	api, err := NewAPI(Default())
	require.NoError(t, err)
	return NewMux(api)
}

func postJSON(t *testing.T, mux http.Handler, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response is not JSON: %s", w.Body.String())
	return w, resp
}

func getJSON(t *testing.T, mux http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

const demoSrc = `package main

import "fmt"

func main() {
	unused := 1
	fmt.Println("hello")
}
`

func TestParseEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/parse", map[string]string{"code": demoSrc})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
	ast, ok := resp["ast"].(map[string]interface{})
	require.True(t, ok, "response carries no ast object")
	require.Equal(t, "File", ast["node_type"])
	structure, ok := resp["structure"].(map[string]interface{})
	require.True(t, ok, "response carries no structure object")
	require.NotEmpty(t, structure["nodes"])
}

func TestParseEndpointRejectsBlank(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/parse", map[string]string{"code": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, resp["success"])
	require.Contains(t, resp["error"], "empty")
}

func TestParseEndpointMethod(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, _ := getJSON(t, mux, "/api/parse")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestUnparseRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	_, parsed := postJSON(t, mux, "/api/parse", map[string]string{"code": demoSrc})
	w, resp := postJSON(t, mux, "/api/unparse", map[string]interface{}{"ast": parsed["ast"]})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
	require.Equal(t, demoSrc, resp["code"])
}

func TestUnparseRejectsMissingAST(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/unparse", map[string]interface{}{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["error"], "ast")
}

func TestUnparseRejectsDegenerateFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	// a File without a package name is caught by the decoder
	w, resp := postJSON(t, mux, "/api/unparse", map[string]interface{}{
		"ast": map[string]interface{}{"node_type": "File"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, false, resp["success"])
	require.Contains(t, resp["error"], "Name")
	// deeper degeneracy (a FuncDecl without a name) trips the printer; the
	// answer must still be the error envelope, not a dropped connection
	w, resp = postJSON(t, mux, "/api/unparse", map[string]interface{}{
		"ast": map[string]interface{}{
			"node_type": "File",
			"Name":      map[string]interface{}{"node_type": "Ident", "Name": "main"},
			"Decls": []interface{}{
				map[string]interface{}{"node_type": "FuncDecl"},
			},
		},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, resp["success"])
	require.Contains(t, resp["error"], "internal error")
}

func TestTransformEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/transform", map[string]interface{}{
		"code":      "package main\n\nfunc answer() int { return 7 }\n",
		"operation": "replace_constants",
		"params":    map[string]interface{}{"new_value": 42},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["success"])
	require.EqualValues(t, 1, resp["applied"])
	require.Contains(t, resp["code"], "return 42")
}

func TestTransformUnknownOperation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/transform", map[string]interface{}{
		"code":      demoSrc,
		"operation": "no_such_op",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["error"], "no_such_op")
}

func TestTransformNeedsInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/transform", map[string]interface{}{
		"operation": "replace_constants",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["error"], "'code' or 'ast'")
}

func TestTransformsEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := getJSON(t, mux, "/api/transforms")
	require.Equal(t, http.StatusOK, w.Code)
	transforms, ok := resp["transforms"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, transforms)
	names := make([]string, 0, len(transforms))
	for _, item := range transforms {
		info := item.(map[string]interface{})
		names = append(names, info["name"].(string))
	}
	require.Contains(t, names, "replace_constants")
	require.Contains(t, names, "add_logging")
}

func TestValidateEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/validate", map[string]string{"code": demoSrc})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, resp["valid"])
	// an invalid snippet is still a 200, with a verdict
	w, resp = postJSON(t, mux, "/api/validate", map[string]string{"code": "func broken( {}"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, resp["valid"])
	require.NotEmpty(t, resp["message"])
}

func TestUnusedEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/unused", map[string]string{"code": demoSrc})
	require.Equal(t, http.StatusOK, w.Code)
	findings, ok := resp["findings"].([]interface{})
	require.True(t, ok)
	require.Len(t, findings, 1)
	finding := findings[0].(map[string]interface{})
	require.Equal(t, "main", finding["function"])
	require.EqualValues(t, []interface{}{"unused"}, finding["unused"])
}

func TestDocEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/doc", map[string]string{"code": demoSrc})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, resp["markdown"], "# Code Documentation")
	require.Contains(t, resp["markdown"], "## Function: `main`")
}

func TestExecuteRejectsBannedImport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := postJSON(t, mux, "/api/execute", map[string]string{
		"code": "package main\n\nimport \"net\"\n\nfunc main() { net.Dial(\"tcp\", \"example.com:80\") }\n",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["error"], "net")
}

func TestLimitsEndpoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	w, resp := getJSON(t, mux, "/api/execution-limits")
	require.Equal(t, http.StatusOK, w.Code)
	limits, ok := resp["limits"].(map[string]interface{})
	require.True(t, ok)
	require.EqualValues(t, 5, limits["timeout_seconds"])
	require.NotEmpty(t, limits["banned_imports"])
}

func TestCORSHeaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "arbor.web")
	defer teardown()
	//
	mux := newTestMux(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/parse", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
