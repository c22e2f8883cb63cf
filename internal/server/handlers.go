package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/ccollicutt/notemap/pkg/analyzer"
	"github.com/ccollicutt/notemap/pkg/output"
)

// AnalyzeRequest is the JSON body accepted by POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// RenderRequest is the JSON body accepted by POST /api/render.
type RenderRequest struct {
	Notes []analyzer.ClassifiedLine `json:"notes"`
}

// RulesResponse is returned by GET /api/rules.
type RulesResponse struct {
	Rules           []analyzer.Rule   `json:"rules"`
	DefaultCategory analyzer.Category `json:"default_category"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "markdown", "html":
	default:
		jsonError(w, fmt.Sprintf("unknown format %q (use json, markdown, or html)", format), http.StatusBadRequest)
		return
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	text := string(body)
	if isJSON(r) {
		var req AnalyzeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
			return
		}
		text = req.Text
	}

	analysis, err := s.analyzer.Analyze(text)
	if err != nil {
		if errors.Is(err, analyzer.ErrEmptyInput) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.log.Error("analysis failed", zap.Error(err))
		jsonError(w, "analysis failed", http.StatusInternalServerError)
		return
	}
	s.metrics.ObserveAnalysis(analysis)

	result := output.NewResult(analysis)

	switch format {
	case "markdown":
		writeMarkdown(w, result.RenderedOutput)
	case "html":
		fragment, err := s.html.Convert(result.RenderedOutput)
		if err != nil {
			s.log.Error("html conversion failed", zap.Error(err))
			jsonError(w, "rendering html failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, fragment)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	var req RenderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		jsonError(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	for i, n := range req.Notes {
		if n.Content == "" {
			jsonError(w, fmt.Sprintf("notes[%d]: content must not be empty", i), http.StatusBadRequest)
			return
		}
		if n.Level < 0 {
			jsonError(w, fmt.Sprintf("notes[%d]: level must be >= 0", i), http.StatusBadRequest)
			return
		}
	}

	writeMarkdown(w, output.Render(req.Notes))
}

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules := s.analyzer.Rules()
	writeJSON(w, http.StatusOK, RulesResponse{
		Rules:           rules.Rules(),
		DefaultCategory: rules.Fallback(),
	})
}

// readBody reads a size-limited request body, answering 413 when it is too large.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMarkdown(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, _ = io.WriteString(w, s)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
