package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/canvasdoc/internal/canvas"
	"github.com/dgallion1/canvasdoc/internal/collect"
	"github.com/dgallion1/canvasdoc/internal/store"
	"github.com/go-chi/chi/v5"
)

type createStoryRequest struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Bio    string `json:"bio"`
}

// handleCreateStory registers a story the editing UI will fill in.
func (s *Server) handleCreateStory(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" || req.UserID == "" {
		jsonError(w, "id and user_id are required", http.StatusBadRequest)
		return
	}

	st := canvas.Story{ID: req.ID, Title: req.Title, Bio: req.Bio}
	if err := s.store.CreateStory(r.Context(), st, req.UserID); err != nil {
		jsonError(w, "failed to create story: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(st)
}

type saveCanvasRequest struct {
	Nodes       []canvas.Node       `json:"nodes"`
	Connections []canvas.Connection `json:"connections"`
}

// handleSaveCanvas upserts one canvas row; the editing UI calls this
// on every save.
func (s *Server) handleSaveCanvas(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")
	canvasID := chi.URLParam(r, "canvasID")

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)
	var req saveCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	c := canvas.Canvas{ID: canvasID, Nodes: req.Nodes, Connections: req.Connections}
	if err := s.store.SaveCanvas(r.Context(), storyID, c); err != nil {
		jsonError(w, "failed to save canvas: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"story_id":  storyID,
		"canvas_id": canvasID,
		"nodes":     len(req.Nodes),
	})
}

// handleHierarchy returns the depth-first canvas visitation order, a
// diagnostics view of what an export would traverse.
func (s *Server) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	storyID := chi.URLParam(r, "storyID")
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		jsonError(w, "user_id query parameter is required", http.StatusBadRequest)
		return
	}

	if _, err := s.store.GetStory(r.Context(), storyID, userID); err != nil {
		if errors.Is(err, store.ErrStoryNotFound) {
			jsonError(w, "story not found", http.StatusNotFound)
			return
		}
		jsonError(w, "failed to fetch story: "+err.Error(), http.StatusInternalServerError)
		return
	}

	canvases, err := s.store.FetchAllCanvases(r.Context(), storyID)
	if err != nil {
		jsonError(w, "failed to fetch canvases: "+err.Error(), http.StatusInternalServerError)
		return
	}

	entries := collect.BuildHierarchy(canvases, canvas.MainCanvasID)
	if entries == nil {
		entries = []collect.HierarchyEntry{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"canvases": entries})
}
