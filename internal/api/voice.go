package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/Harsh7114/Inventory-Tracker/internal/voice"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// commandRequest is the JSON body for the typed-command endpoint.
type commandRequest struct {
	Utterance string `json:"utterance"`
}

// handleVoiceProcess handles POST /api/voice/process. The request is a
// multipart form with the recording under the "audio" field. The response is
// the full pipeline result: transcript, applied items, and any per-candidate
// failures.
func (s *Server) handleVoiceProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxAudioBytes)

	file, _, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio upload: "+err.Error())
		return
	}
	if len(audio) == 0 {
		writeError(w, http.StatusBadRequest, "audio file is empty")
		return
	}

	result, err := s.pipeline.ProcessAudio(r.Context(), audio)
	if err != nil {
		switch {
		case errors.Is(err, voice.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, transcribe.ErrNoSpeech):
			writeError(w, http.StatusInternalServerError, "no speech detected in audio")
		default:
			slog.Error("api: voice processing failed", "err", err)
			writeError(w, http.StatusInternalServerError, "voice processing failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleVoiceCommand handles POST /api/voice/command: the deterministic path
// over a typed utterance. Unrecognized or unmatched commands are 200s with
// the outcome in the body; only store failures are errors.
func (s *Server) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Utterance == "" {
		writeError(w, http.StatusBadRequest, "utterance is required")
		return
	}

	result, err := s.pipeline.ProcessUtterance(r.Context(), req.Utterance)
	if err != nil {
		slog.Error("api: voice command failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
