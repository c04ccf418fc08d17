package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dgallion1/canvasdoc/internal/export"
	"github.com/dgallion1/canvasdoc/internal/format"
	"github.com/go-chi/chi/v5"
)

type exportRequest struct {
	UserID  string          `json:"user_id"`
	Format  string          `json:"format"`
	Include *format.Include `json:"include"`
}

// handleExport queues an export job for a story and returns poll URLs.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		jsonError(w, "user_id is required", http.StatusBadRequest)
		return
	}
	if _, err := format.For(req.Format); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := format.Options{Format: req.Format, Include: format.IncludeAll()}
	if req.Include != nil {
		opts.Include = *req.Include
	}

	job := export.NewJob(storyID, req.UserID, opts)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":       job.ID,
		"status":       export.StatusQueued,
		"poll_url":     fmt.Sprintf("/api/export/%s/status", job.ID),
		"download_url": fmt.Sprintf("/api/export/%s/download", job.ID),
	})
}

func (s *Server) handleExportStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

// handleExportDownload serves the finished artifact as an attachment.
func (s *Server) handleExportDownload(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	artifact := job.Artifact()
	if artifact == nil {
		snap := job.Snapshot()
		if snap.Status == export.StatusFailed {
			jsonError(w, "export failed: "+snap.Error, http.StatusGone)
			return
		}
		jsonError(w, "export not finished", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Write(artifact.Content)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
