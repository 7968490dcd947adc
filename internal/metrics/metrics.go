// Package metrics serves the live-profiling statsviz UI every cmd/*
// entry point exposes on its metric port, the way the teacher's
// user/main.go and hall/main.go serve it at /debug/statsviz/.
package metrics

import (
	"net/http"

	"github.com/arl/statsviz"
)

// Serve registers the statsviz handlers on a dedicated mux and blocks
// serving addr.
func Serve(addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	return http.ListenAndServe(addr, mux)
}
