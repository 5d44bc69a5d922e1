package overlay

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

//go:embed bionic.js
var bionicJS []byte

// ServeScript serves the embedded page adapter.
func (o *Overlay) ServeScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(bionicJS)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
