// Package debugsrv exposes spec.md §6's "Debug dump" as a plain HTTP
// endpoint, adapted from the teacher's gin route-handler style in
// gate/api/game.go.
package debugsrv

import (
	"fmt"
	"net/http"
	"strconv"

	"riichiengine/internal/rlog"
	"riichiengine/state"

	"github.com/gin-gonic/gin"
)

// Registry resolves a seat to its live PlayerState. shim.Server
// implements this directly; it is an interface here so debugsrv never
// imports shim back.
type Registry interface {
	State(seat int) (*state.PlayerState, bool)
}

// Server serves GET /debug/state/:seat, returning state.Dump()'s fixed
// text format as text/plain.
type Server struct {
	registry Registry
	engine   *gin.Engine
}

// New builds a Server backed by registry.
func New(registry Registry) *Server {
	gin.SetMode(gin.ReleaseMode)
	e := gin.New()
	e.Use(gin.Recovery())

	s := &Server{registry: registry, engine: e}
	e.GET("/debug/state/:seat", s.dumpState)
	return s
}

// Run serves the debug HTTP endpoint on addr.
func (s *Server) Run(addr string) error {
	rlog.Info("debug http listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *Server) dumpState(c *gin.Context) {
	seat, err := strconv.Atoi(c.Param("seat"))
	if err != nil || seat < 0 || seat > 3 {
		c.String(http.StatusBadRequest, "bad seat %q\n", c.Param("seat"))
		return
	}

	ps, ok := s.registry.State(seat)
	if !ok {
		c.String(http.StatusNotFound, fmt.Sprintf("no active session for seat %d\n", seat))
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(ps.Dump()))
}
