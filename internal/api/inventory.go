package api

import (
	"encoding/json"
	"net/http"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

// handleListItems handles GET /api/inventory.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.inv.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if items == nil {
		items = []inventory.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleGetItem handles GET /api/inventory/{id}.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.inv.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// handleCreateItem handles POST /api/inventory.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var fields inventory.Fields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := s.inv.Create(r.Context(), fields)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.checkLowStock(r, item)
	writeJSON(w, http.StatusCreated, item)
}

// handleUpdateItem handles PATCH /api/inventory/{id}.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var patch inventory.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	item, err := s.inv.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	s.checkLowStock(r, item)
	writeJSON(w, http.StatusOK, item)
}

// handleDeleteItem handles DELETE /api/inventory/{id}.
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := s.inv.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// checkLowStock runs the low-stock evaluator after a mutation when one is
// configured.
func (s *Server) checkLowStock(r *http.Request, item inventory.Item) {
	if s.evaluator == nil {
		return
	}
	s.evaluator.CheckItem(r.Context(), item)
}
