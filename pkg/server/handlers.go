package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nagyist/rover-android/pkg/buildinfo"
	"github.com/nagyist/rover-android/pkg/cache"
	"github.com/nagyist/rover-android/pkg/document"
	rerrors "github.com/nagyist/rover-android/pkg/errors"
	"github.com/nagyist/rover-android/pkg/layout"
	"github.com/nagyist/rover-android/pkg/observability"
	"github.com/nagyist/rover-android/pkg/pipeline"
	"github.com/nagyist/rover-android/pkg/render"
	"github.com/nagyist/rover-android/pkg/store"
)

// Response headers set by the render endpoint.
const (
	HeaderRunID = "X-Rover-Run"
	HeaderCache = "X-Rover-Cache"
)

type healthResponse struct {
	Status  string         `json:"status"`
	Version buildinfo.Info `json:"version"`
}

type layoutResponse struct {
	RunID       string            `json:"run_id"`
	Document    string            `json:"document,omitempty"`
	Constraints string            `json:"constraints"`
	Size        layout.Size       `json:"size"`
	Boxes       int               `json:"boxes"`
	Errors      []string          `json:"errors,omitempty"`
	Cached      bool              `json:"cached"`
	Placement   *layout.Placement `json:"placement"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    rerrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Get()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Stats.Snapshot())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	start := time.Now()
	doc, err := pipeline.Load(ctx, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, hit, err := s.runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	hash := ""
	if data, err := document.Marshal(doc, document.FormatJSON); err == nil {
		hash = cache.Hash(data)
	}
	run, err := s.record(r, hash, opts, p, time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		RunID:       run.ID,
		Document:    run.Document,
		Constraints: run.Constraints,
		Size:        p.Size,
		Boxes:       p.Count(),
		Errors:      run.Errors,
		Cached:      hit,
		Placement:   p,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if f := r.URL.Query().Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if len(opts.Formats) > 1 {
		s.writeError(w, r, rerrors.New(rerrors.ErrCodeInvalidInput, "render one format per request, got %d", len(opts.Formats)))
		return
	}

	start := time.Now()
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	run, err := s.record(r, result.DocumentHash, opts, result.Placement, time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := render.FormatJSON
	if len(opts.Formats) == 1 {
		format, _ = render.ParseFormat(opts.Formats[0])
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(HeaderRunID, run.ID)
	w.Header().Set(HeaderCache, cacheHeader(result.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[string(format)])
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := store.ListOptions{Document: q.Get("document")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, rerrors.New(rerrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		opts.Limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// The list omits placement trees; fetch a run by ID for its tree.
	summaries := make([]store.Run, len(runs))
	for i, run := range runs {
		summaries[i] = *run
		summaries[i].Placement = nil
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": summaries})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptions reads the request body and fills unset layout options from
// the server defaults. Only inline documents are accepted.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return opts, errBodyTooLarge
		}
		return opts, rerrors.Wrap(rerrors.ErrCodeInvalidFormat, err, "decode request")
	}
	if opts.Document == nil {
		return opts, rerrors.New(rerrors.ErrCodeInvalidInput, "request has no document")
	}

	d := s.cfg.Defaults
	if opts.Width == 0 {
		opts.Width = d.Width
	}
	if opts.Height == 0 {
		opts.Height = d.Height
	}
	if opts.Metrics == nil {
		opts.Metrics = d.Metrics
	}
	if opts.InfinityDefault == 0 {
		opts.InfinityDefault = d.InfinityDefault
	}
	opts.PackedTransport = opts.PackedTransport || d.PackedTransport
	opts.Logger = s.logger
	return opts, nil
}

func (s *Server) record(r *http.Request, hash string, opts pipeline.Options, p *layout.Placement, dur time.Duration) (*store.Run, error) {
	doc := opts.Document
	screen := opts.Screen()
	if screen.Width == 0 {
		screen.Width = pipeline.DefaultWidth.Int()
	}
	if screen.Height == 0 {
		screen.Height = pipeline.DefaultHeight.Int()
	}
	run := store.NewRun(doc.Name, hash, doc.Constraints(screen), p)
	run.Duration = dur
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		return nil, err
	}
	return run, nil
}

var errBodyTooLarge = errors.New("request body too large")

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := rerrors.HTTPStatus(err)
	code := rerrors.GetCode(err)
	if errors.Is(err, errBodyTooLarge) {
		status, code = http.StatusRequestEntityTooLarge, rerrors.ErrCodeInvalidInput
	}
	if code == "" {
		code = rerrors.ErrCodeInternal
	}

	route := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		route = rctx.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)
	if status >= 500 {
		s.logger.Error("request failed", "route", route, "error", err)
	}

	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: rerrors.UserMessage(err)}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func cacheHeader(ci pipeline.CacheInfo) string {
	switch {
	case ci.LayoutHit && ci.RenderHit:
		return "hit"
	case ci.LayoutHit:
		return "layout"
	}
	return "miss"
}
