package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/matzehuels/topicmap/pkg/buildinfo"
	"github.com/matzehuels/topicmap/pkg/errors"
	"github.com/matzehuels/topicmap/pkg/index"
	"github.com/matzehuels/topicmap/pkg/pipeline"
	"github.com/matzehuels/topicmap/pkg/topic"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok", "version": buildinfo.Version}
	if snap := s.runner.Current(); snap != nil {
		body["topics"] = snap.Index.Len()
		body["loaded_at"] = snap.LoadedAt.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.renderOptions(w, r)
	if !ok {
		return
	}
	res, err := s.runner.RenderPage(r.Context(), r.URL.Query().Get("id"), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(res.State.HTTPStatus())
	w.Write(res.Body)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.renderOptions(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		jsonError(w, "id query parameter is required", http.StatusBadRequest)
		return
	}
	res, err := s.runner.RenderMap(r.Context(), id, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeSVG(w, res.Body)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	depth, err := parseDepth(q)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := pipeline.OverviewOptions{Overview: s.opts.Overview, Refresh: parseBool(q, "refresh")}
	if dir := q.Get("dir"); dir != "" {
		opts.Overview.Direction = strings.ToUpper(dir)
	}
	if depth > 0 {
		opts.Overview.MaxDepth = depth
	}
	if focus := q.Get("focus"); focus != "" {
		if err := errors.ValidateTopicID(focus); err != nil {
			s.writeError(w, err)
			return
		}
		opts.Overview.Highlight = focus
	}
	if opts.Overview.LinkBase == "" {
		opts.Overview.LinkBase = s.opts.Page.LinkBase
	}

	res, err := s.runner.RenderOverview(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeSVG(w, res.Body)
}

// topicResponse is the JSON view of one index entry.
type topicResponse struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Parent   string         `json:"parent,omitempty"`
	Children []string       `json:"children"`
	Path     []string       `json:"path"`
	Context  *topic.Context `json:"context,omitempty"`
}

func (s *Server) handleTopic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateTopicID(id); err != nil {
		s.writeError(w, err)
		return
	}
	snap, err := s.runner.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	e, ok := snap.Index.Get(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeTopicNotFound, "topic %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, newTopicResponse(snap.Index, e))
}

func newTopicResponse(idx *index.Index, e index.Entry) topicResponse {
	resp := topicResponse{
		ID:       e.ID,
		Label:    e.Label,
		Parent:   e.Parent,
		Children: append([]string{}, e.Children...),
		Context:  e.Context(),
	}
	for _, p := range idx.Path(e.ID) {
		resp.Path = append(resp.Path, p.ID)
	}
	return resp
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runner.Load(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	st := snap.Index.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"source":     snap.Source,
		"hash":       snap.Hash,
		"topics":     st.Topics,
		"leaves":     st.Leaves,
		"max_depth":  st.MaxDepth,
		"max_fanout": st.MaxFanout,
		"duplicates": st.Duplicates,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runner.Reload(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": snap.Index.Len(), "hash": snap.Hash})
}

func (s *Server) renderOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	q := r.URL.Query()
	zoom, err := parseZoom(q)
	if err != nil {
		s.writeError(w, err)
		return pipeline.Options{}, false
	}
	panX, panY, err := parsePan(q)
	if err != nil {
		s.writeError(w, err)
		return pipeline.Options{}, false
	}

	opts := pipeline.Options{Page: s.opts.Page, Refresh: parseBool(q, "refresh")}
	opts.Page.Viewport = nil
	opts.Page.ZoomSteps = zoom
	opts.Page.PanX, opts.Page.PanY = panX, panY
	opts.Page.Fit = opts.Page.Fit || parseBool(q, "fit")
	return opts, true
}

// writeError maps coded errors to statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "code", errors.GetCode(err), "err", err)
	}
	jsonError(w, errors.UserMessage(err), status)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeInvalidID), errors.Is(err, errors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeTopicNotFound), errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.IsLoadFailure(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeSVG(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
