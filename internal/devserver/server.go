// Package devserver serves the backend's client HTTP contract from fixtures so
// the desk can run without the real backend.
package devserver

import (
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"ScoringDesk/internal/query"
)

const apiPrefix = "/api/clients"

// Server is a fixture-backed fasthttp server.
type Server struct {
	fixtures *Fixtures
	srv      *fasthttp.Server
}

// New creates a Server. Nil fixtures fall back to DefaultFixtures.
func New(fx *Fixtures) *Server {
	if fx == nil {
		fx = DefaultFixtures()
	}
	s := &Server{fixtures: fx}
	s.srv = &fasthttp.Server{Handler: s.Handle, Name: "scoringdesk-devserver"}
	return s
}

// ListenAndServe serves on addr until Shutdown.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[INFO] devserver listening on %s (%d clients)", addr, len(s.fixtures.Clients))
	return s.srv.ListenAndServe(addr)
}

// Serve serves on an existing listener until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.srv.Serve(ln)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.srv.Shutdown()
}

// Handle routes one request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		respondError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := string(ctx.Path())
	if path == apiPrefix {
		s.list(ctx)
		return
	}
	rest, ok := strings.CutPrefix(path, apiPrefix+"/")
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	if rest == "search" {
		s.search(ctx)
		return
	}

	idStr, sub, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(ctx, fasthttp.StatusBadRequest, "invalid client ID")
		return
	}
	switch sub {
	case "":
		s.get(ctx, id)
	case "scoring":
		s.scoring(ctx, id)
	default:
		respondError(ctx, fasthttp.StatusNotFound, "not found")
	}
}

func (s *Server) list(ctx *fasthttp.RequestCtx) {
	out := make([]clientJSON, 0, len(s.fixtures.Clients))
	for _, c := range s.fixtures.Clients {
		out = append(out, toClientJSON(c))
	}
	respondJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) search(ctx *fasthttp.RequestCtx) {
	values := url.Values{}
	// blank parameters count as absent, as on the real backend
	ctx.QueryArgs().VisitAll(func(k, v []byte) {
		if len(v) > 0 {
			values.Add(string(k), string(v))
		}
	})
	c, err := query.Parse(values)
	if err != nil {
		respondError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if c.Empty() {
		respondError(ctx, fasthttp.StatusBadRequest, "at least one search parameter is required")
		return
	}

	out := make([]clientJSON, 0)
	for _, rec := range s.fixtures.Clients {
		if c.Matches(rec) {
			out = append(out, toClientJSON(rec))
		}
	}
	respondJSON(ctx, fasthttp.StatusOK, out)
}

func (s *Server) get(ctx *fasthttp.RequestCtx, id int64) {
	c, ok := s.fixtures.client(id)
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "client not found")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, toClientJSON(c))
}

func (s *Server) scoring(ctx *fasthttp.RequestCtx, id int64) {
	c, ok := s.fixtures.client(id)
	if !ok {
		respondError(ctx, fasthttp.StatusNotFound, "client not found")
		return
	}
	sc, ok := s.fixtures.Scorings[id]
	if !ok {
		respondError(ctx, fasthttp.StatusInternalServerError, "failed to calculate scoring")
		return
	}
	respondJSON(ctx, fasthttp.StatusOK, toScoringJSON(c, sc))
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[ERROR] devserver encode: %v", err)
		ctx.Error("internal error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(data)
}

func respondError(ctx *fasthttp.RequestCtx, status int, msg string) {
	respondJSON(ctx, status, errorResponse{Error: msg})
}
