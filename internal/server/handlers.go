package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/tikzgrid/pkg/buildinfo"
	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
	"github.com/matzehuels/tikzgrid/pkg/observability"
	"github.com/matzehuels/tikzgrid/pkg/palette"
	"github.com/matzehuels/tikzgrid/pkg/preview"
	"github.com/matzehuels/tikzgrid/pkg/tikz"
)

// =============================================================================
// Payloads
// =============================================================================

type savePaletteRequest struct {
	Palette []json.RawMessage `json:"palette"`
}

// entries decodes each palette element on its own and skips the ones that
// are not entry objects.
func (req savePaletteRequest) entries() []palette.Entry {
	entries := make([]palette.Entry, 0, len(req.Palette))
	for _, raw := range req.Palette {
		var e palette.Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

type statusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type generateResponse struct {
	TikzCode string `json:"tikz_code"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := indexPage()
	if err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInternal, err, "index page missing"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleGetColors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Load(r.Context()))
}

func (s *Server) handleSaveColors(w http.ResponseWriter, r *http.Request) {
	var req savePaletteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidRequest, err, "invalid palette payload"))
		return
	}
	if err := s.store.Save(r.Context(), req.entries()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

func (s *Server) handleGenerateGrid(w http.ResponseWriter, r *http.Request) {
	req, err := tikz.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes), tikz.EncodingJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	composer := tikz.NewComposer(s.cfg.Grid, palette.Palette(s.store.Load(ctx)))
	start := time.Now()
	res := composer.ComposeResult(req)
	observability.Compose().OnComposeComplete(ctx, res.Diagrams, len(res.Colors), res.DroppedEdges, time.Since(start))

	if res.DroppedEdges > 0 {
		s.logger.Debug("dropped edges with unknown endpoints", "count", res.DroppedEdges)
	}
	writeJSON(w, http.StatusOK, generateResponse{TikzCode: res.Markup})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, err := tikz.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes), tikz.EncodingJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	index := 0
	if v := r.URL.Query().Get("graph"); v != "" {
		index, err = strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, perrors.New(perrors.ErrCodeInvalidRequest, "graph must be a number, got %q", v))
			return
		}
	}
	if index < 0 || index >= len(req.Graphs) {
		s.writeError(w, r, perrors.New(perrors.ErrCodeNotFound, "no graph at index %d (have %d)", index, len(req.Graphs)))
		return
	}

	format, err := preview.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	renderer := s.renderer.WithLookup(palette.Palette(s.store.Load(ctx)))
	out, err := renderer.Render(ctx, req.Graphs[index], format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(out)
}

// =============================================================================
// Helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := perrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", requestIDFrom(r.Context()), "err", err)
	} else {
		s.logger.Debug("bad request", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: perrors.UserMessage(err), Code: string(perrors.GetCode(err))})
}
