package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/sdstools/sdsclean/internal/core"
	"github.com/sdstools/sdsclean/internal/history"
	"github.com/sdstools/sdsclean/internal/logging"
	"github.com/sdstools/sdsclean/internal/schema"
)

// validateRequest is the body of POST /api/validate. Directory names a
// roster directory on the server's filesystem.
type validateRequest struct {
	Directory string `json:"directory"`
}

// schemaInfo is the wire form of one file layout.
type schemaInfo struct {
	Name           string   `json:"name"`
	Required       bool     `json:"required"`
	Headers        []string `json:"headers"`
	RequiredFields []string `json:"requiredFields"`
	LegacyHeaders  []string `json:"legacyHeaders,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchemas(w http.ResponseWriter, r *http.Request) {
	var out []schemaInfo
	for _, f := range schema.Files() {
		out = append(out, schemaInfo{
			Name:           f.Name,
			Required:       f.Required,
			Headers:        f.CanonicalHeaders,
			RequiredFields: f.CanonicalRequired,
			LegacyHeaders:  f.LegacyHeaders,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Directory == "" {
		respondError(w, http.StatusBadRequest, "directory is required")
		return
	}
	info, err := os.Stat(req.Directory)
	if err != nil || !info.IsDir() {
		respondError(w, http.StatusBadRequest, "directory does not exist")
		return
	}

	logger := logging.FromContext(r.Context())
	logger.Info("starting validation", "dir", req.Directory)

	pipeline := core.NewPipeline(core.PipelineConfig{
		Dir:            req.Directory,
		OutputDirName:  s.cfg.Validator.OutputDirName,
		ReportFileName: s.cfg.Validator.ReportFileName,
	})
	result, err := pipeline.Run(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			respondError(w, http.StatusServiceUnavailable, "validation run interrupted")
			return
		}
		logger.Error("validation run failed", "error", err)
		respondError(w, http.StatusInternalServerError, "validation run failed")
		return
	}

	if s.history != nil {
		if err := s.history.Record(r.Context(), result); err != nil {
			// History is best effort; the run result is still returned.
			logger.Warn("recording run history failed", "error", err)
		}
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotImplemented, "run history is not configured")
		return
	}
	runs, err := s.history.Recent(r.Context(), 20)
	if err != nil {
		logging.FromContext(r.Context()).Error("listing runs failed", "error", err)
		respondError(w, http.StatusInternalServerError, "listing runs failed")
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	respondJSON(w, http.StatusOK, runs)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
