// Package server exposes a read-only HTTP API over a loaded alignment
// result.
//
// The server answers membership and relation queries for a single result;
// it never mutates it. Mount the handler behind any http.Server:
//
//	srv := server.New(res)
//	http.ListenAndServe(":8080", srv.Handler())
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/omicalign/omicalign/pkg/align"
	"github.com/omicalign/omicalign/pkg/errors"
	"github.com/omicalign/omicalign/pkg/render"
	"github.com/omicalign/omicalign/pkg/resultio"
)

// Server serves queries over one alignment result.
type Server struct {
	res *align.Result
}

// New creates a server for the given result.
func New(res *align.Result) *Server {
	return &Server{res: res}
}

// Handler builds the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/stats", s.handleStats)
	r.Get("/lookup", s.handleLookup)
	r.Get("/unclassified", s.handleUnclassified)
	r.Get("/graph.dot", s.handleGraphDOT)
	r.Get("/graph.svg", s.handleGraphSVG)

	r.Route("/groups", func(r chi.Router) {
		r.Get("/", s.handleGroups)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGroup)
			r.Get("/relations", s.handleGroupRelations)
		})
	})

	return r
}

// groupSummary is the list-view shape of one group.
type groupSummary struct {
	ID      int    `json:"id"`
	Members int    `json:"members"`
	Type    string `json:"type,omitempty"`
}

// groupDetail is the full shape of one group.
type groupDetail struct {
	ID      int               `json:"id"`
	Members []resultio.Member `json:"members"`
}

// groupRelations holds a group's relation rows in both directions.
type groupRelations struct {
	ID       int                   `json:"id"`
	Outgoing []align.GroupRelation `json:"outgoing"`
	Incoming []align.GroupRelation `json:"incoming"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, resultio.Stats{
		Groups:    s.res.GroupCount(),
		Members:   s.res.MemberCount(),
		Relations: s.res.RelationCount(),
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	gids := s.res.GroupIDs()
	summaries := make([]groupSummary, 0, len(gids))
	for _, gid := range gids {
		members := s.res.Members(gid)
		sum := groupSummary{ID: gid, Members: len(members)}
		if len(members) > 0 {
			sum.Type = members[0].Type
		}
		summaries = append(summaries, sum)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	gid, ok := s.groupID(w, r)
	if !ok {
		return
	}
	s.writeGroup(w, gid)
}

func (s *Server) handleGroupRelations(w http.ResponseWriter, r *http.Request) {
	gid, ok := s.groupID(w, r)
	if !ok {
		return
	}
	out := s.res.RelationsFrom(gid)
	in := s.res.RelationsTo(gid)
	if out == nil {
		out = []align.GroupRelation{}
	}
	if in == nil {
		in = []align.GroupRelation{}
	}
	writeJSON(w, http.StatusOK, groupRelations{ID: gid, Outgoing: out, Incoming: in})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	id := r.URL.Query().Get("id")
	if scope == "" || id == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidDataset, "scope and id query parameters are required"))
		return
	}
	gid, ok := s.res.GroupOf(scope, id)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeGroupNotFound, "identifier %s:%s is not aligned", scope, id))
		return
	}
	s.writeGroup(w, gid)
}

func (s *Server) handleUnclassified(w http.ResponseWriter, r *http.Request) {
	edges := s.res.Unclassified()
	out := make([]resultio.Unclassified, len(edges))
	for i, e := range edges {
		out[i] = resultio.Unclassified{
			SrcScope:    e.Src.Scope,
			SrcID:       e.Src.ID,
			Namespace:   e.Namespace,
			TargetScope: e.Target.Scope,
			TargetID:    e.Target.ID,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGraphDOT(w http.ResponseWriter, r *http.Request) {
	dot := render.ToDOT(s.res, graphOptions(r))
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	_, _ = w.Write([]byte(dot))
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	svg, err := render.RenderSVG(render.ToDOT(s.res, graphOptions(r)))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "failed to render graph"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(svg)
}

func graphOptions(r *http.Request) render.Options {
	q := r.URL.Query()
	return render.Options{
		Detailed:        q.Get("detailed") == "true",
		IncludeIsolated: q.Get("isolated") == "true",
	}
}

func (s *Server) groupID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	gid, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeGroupNotFound, "invalid group id %q", raw))
		return 0, false
	}
	if len(s.res.Members(gid)) == 0 {
		writeError(w, errors.New(errors.ErrCodeGroupNotFound, "no group with id %s", raw))
		return 0, false
	}
	return gid, true
}

func (s *Server) writeGroup(w http.ResponseWriter, gid int) {
	members := s.res.Members(gid)
	out := make([]resultio.Member, len(members))
	for i, m := range members {
		out[i] = resultio.Member{Scope: m.Scope, Identifier: m.Identifier, Type: m.Type}
	}
	writeJSON(w, http.StatusOK, groupDetail{ID: gid, Members: out})
}

// errorResponse is the JSON shape of an API error.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeGroupNotFound, errors.ErrCodeResultNotFound, errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidManifest, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidResult:
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
