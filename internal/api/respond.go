package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

// errorBody is the JSON error envelope used by every endpoint.
type errorBody struct {
	Error string `json:"error"`
}

// writeJSON encodes v with the given status. Encoding failures are logged,
// not surfaced; the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("api: encode response", "err", err)
	}
}

// writeError writes the {"error": msg} envelope with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeStoreError maps store errors to HTTP statuses: not-found to 404,
// validation failures to 400, anything else to 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound), errors.Is(err, alerts.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inventory.ErrInvalid), errors.Is(err, alerts.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("api: store operation failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
