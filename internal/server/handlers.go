package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/assetmap/pkg/buildinfo"
	"github.com/matzehuels/assetmap/pkg/errors"
	"github.com/matzehuels/assetmap/pkg/graph"
	"github.com/matzehuels/assetmap/pkg/hull"
	pkgio "github.com/matzehuels/assetmap/pkg/io"
	"github.com/matzehuels/assetmap/pkg/pipeline"
	"github.com/matzehuels/assetmap/pkg/projection"
	"github.com/matzehuels/assetmap/pkg/render"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// graphRequest is the body of every API route: a business graph plus the
// options a caller may override per request.
type graphRequest struct {
	graph.Graph

	ConnectorRelation string        `json:"connector_relation,omitempty"`
	Bounds            *graph.Layout `json:"bounds,omitempty"`
	Hidden            []string      `json:"hidden,omitempty"`
	Detailed          bool          `json:"detailed,omitempty"`
	Engine            string        `json:"engine,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

type hullsResponse struct {
	Regions  []hull.Region        `json:"regions"`
	Elements []projection.Element `json:"elements"`
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// renderFormats are the formats served over HTTP. PDF and PNG need a local
// converter and are left to the CLI.
var renderFormats = map[render.Format]bool{
	render.FormatSVG:  true,
	render.FormatDOT:  true,
	render.FormatJSON: true,
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGraphRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, hit, err := s.runner.ProjectWithCacheInfo(r.Context(), req.Graph, s.options(req))
	if err != nil {
		s.writeError(w, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleHulls(w http.ResponseWriter, r *http.Request) {
	req, err := decodeGraphRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.options(req)
	res := s.runner.Project(r.Context(), req.Graph, opts)
	regions, _ := s.runner.Hulls(r.Context(), res, opts)

	resp := hullsResponse{
		Regions:  regions,
		Elements: make([]projection.Element, 0, len(regions)),
	}
	for _, region := range regions {
		resp.Elements = append(resp.Elements, region.Element())
	}
	if resp.Regions == nil {
		resp.Regions = []hull.Region{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := render.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = render.FormatSVG
	}
	if !renderFormats[format] {
		s.writeError(w, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be one of: svg, dot, json)", format))
		return
	}

	req, err := decodeGraphRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	opts := s.options(req)
	opts.Formats = []string{string(format)}
	result, err := s.runner.ExecuteGraph(r.Context(), req.Graph, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	setCacheHeader(w, result.CacheInfo.RenderHit)
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[string(format)])
}

// =============================================================================
// Helpers
// =============================================================================

func decodeGraphRequest(r *http.Request) (graphRequest, error) {
	var req graphRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	if err := pipeline.ValidateEngine(req.Engine); err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid engine %q", req.Engine)
	}
	pkgio.AssignEdgeIDs(&req.Graph)
	if err := req.Graph.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// options layers request overrides on the configured defaults.
func (s *Server) options(req graphRequest) pipeline.Options {
	opts := s.cfg.Defaults
	opts.Logger = s.logger
	if req.ConnectorRelation != "" {
		opts.ConnectorRelation = req.ConnectorRelation
	}
	if req.Bounds != nil {
		opts.Bounds = req.Bounds
	}
	if len(req.Hidden) > 0 {
		opts.Hidden = req.Hidden
	}
	if req.Detailed {
		opts.Detailed = true
	}
	if req.Engine != "" {
		opts.Engine = req.Engine
	}
	return opts
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set("X-Cache", "HIT")
		return
	}
	w.Header().Set("X-Cache", "MISS")
}
