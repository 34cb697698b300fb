// Package api exposes the inventory tracker's REST surface: inventory CRUD,
// notifications, and the two voice endpoints (audio upload and typed
// command). All responses are JSON; errors use a {"error": "..."} envelope.
package api

import (
	"net/http"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	"github.com/Harsh7114/Inventory-Tracker/internal/voice"
)

// Server holds the handler dependencies for the REST surface.
type Server struct {
	inv       inventory.Store
	notes     alerts.Store
	pipeline  *voice.Pipeline
	evaluator *alerts.Evaluator

	// maxAudioBytes caps the accepted multipart audio upload size.
	maxAudioBytes int64
}

// Option configures a [Server].
type Option func(*Server)

// WithEvaluator enables low-stock notification checks after CRUD mutations.
func WithEvaluator(e *alerts.Evaluator) Option {
	return func(s *Server) {
		s.evaluator = e
	}
}

// WithMaxAudioBytes overrides the audio upload size cap. Default 25 MiB,
// matching the hosted transcription services' own limit.
func WithMaxAudioBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxAudioBytes = n
		}
	}
}

// NewServer creates the REST handler set. pipeline may be built without
// remote engines; the audio endpoint then reports that voice processing is
// not configured while the rest of the surface keeps working.
func NewServer(inv inventory.Store, notes alerts.Store, pipeline *voice.Pipeline, opts ...Option) *Server {
	s := &Server{
		inv:           inv,
		notes:         notes,
		pipeline:      pipeline,
		maxAudioBytes: 25 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns an http.Handler serving the API routes:
//
//	GET    /api/inventory                    — list items
//	POST   /api/inventory                    — create item (201)
//	GET    /api/inventory/{id}               — fetch one item
//	PATCH  /api/inventory/{id}               — partial update
//	DELETE /api/inventory/{id}               — delete (204)
//	GET    /api/notifications                — list, newest first
//	POST   /api/notifications                — create (201)
//	GET    /api/notifications/{id}           — fetch one
//	PATCH  /api/notifications/{id}/read      — mark read
//	DELETE /api/notifications/{id}           — delete (204)
//	POST   /api/voice/process                — multipart "audio" upload
//	POST   /api/voice/command                — JSON {"utterance": "..."}
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/inventory", s.handleListItems)
	mux.HandleFunc("POST /api/inventory", s.handleCreateItem)
	mux.HandleFunc("GET /api/inventory/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /api/inventory/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /api/inventory/{id}", s.handleDeleteItem)

	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)
	mux.HandleFunc("POST /api/notifications", s.handleCreateNotification)
	mux.HandleFunc("GET /api/notifications/{id}", s.handleGetNotification)
	mux.HandleFunc("PATCH /api/notifications/{id}/read", s.handleMarkNotificationRead)
	mux.HandleFunc("DELETE /api/notifications/{id}", s.handleDeleteNotification)

	mux.HandleFunc("POST /api/voice/process", s.handleVoiceProcess)
	mux.HandleFunc("POST /api/voice/command", s.handleVoiceCommand)

	return mux
}
