package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"net/http"
)

// NewMux wires the API routes, wrapped in the CORS middleware.
func NewMux(api *API) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", api.handleParse)
	mux.HandleFunc("/api/unparse", api.handleUnparse)
	mux.HandleFunc("/api/transform", api.handleTransform)
	mux.HandleFunc("/api/transforms", api.handleTransforms)
	mux.HandleFunc("/api/validate", api.handleValidate)
	mux.HandleFunc("/api/unused", api.handleUnused)
	mux.HandleFunc("/api/doc", api.handleDoc)
	mux.HandleFunc("/api/execute", api.handleExecute)
	mux.HandleFunc("/api/execute/ws", api.handleExecuteWS)
	mux.HandleFunc("/api/execution-limits", api.handleLimits)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]interface{}{"status": "ok"})
	})
	return CORS(Recover(mux))
}
