package api

import (
	"encoding/json"
	"net/http"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
)

// handleListNotifications handles GET /api/notifications.
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if notes == nil {
		notes = []alerts.Notification{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// handleGetNotification handles GET /api/notifications/{id}.
func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleCreateNotification handles POST /api/notifications.
func (s *Server) handleCreateNotification(w http.ResponseWriter, r *http.Request) {
	var fields alerts.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	note, err := s.notes.Create(r.Context(), fields)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// handleMarkNotificationRead handles PATCH /api/notifications/{id}/read.
// Marking an already-read notification is a no-op and still returns 200.
func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// handleDeleteNotification handles DELETE /api/notifications/{id}.
func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := s.notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
