package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The HTTP layer already answers any origin, so does the socket.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFrame is one websocket message: output lines while the snippet
// runs, then a single result frame.
type streamFrame struct {
	Type     string `json:"type"` // "line" or "result"
	Stream   string `json:"stream,omitempty"`
	Line     string `json:"line,omitempty"`
	Exit     int    `json:"exit,omitempty"`
	TimedOut bool   `json:"timed_out,omitempty"`
	Error    string `json:"error,omitempty"`
}

// handleExecuteWS answers GET /api/execute/ws. The client sends one
// {"code": …} message; the server streams output lines as they appear and
// closes the socket after the result frame.
func (api *API) handleExecuteWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		tracer().Infof("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	var req codeRequest
	if err := conn.ReadJSON(&req); err != nil {
		conn.WriteJSON(streamFrame{Type: "result", Error: "request is not valid JSON"})
		return
	}
	var mx sync.Mutex // gorilla connections allow one concurrent writer
	emit := func(stream, line string) {
		mx.Lock()
		defer mx.Unlock()
		if err := conn.WriteJSON(streamFrame{Type: "line", Stream: stream, Line: line}); err != nil {
			tracer().Debugf("websocket write failed: %v", err)
		}
	}
	res, err := api.runner.RunStream(r.Context(), []byte(req.Code), emit)
	mx.Lock()
	defer mx.Unlock()
	if err != nil {
		conn.WriteJSON(streamFrame{Type: "result", Error: err.Error()})
		return
	}
	conn.WriteJSON(streamFrame{
		Type:     "result",
		Exit:     res.ExitCode,
		TimedOut: res.TimedOut,
	})
}
