package api

import (
	"encoding/json"
	"net/http"

	"github.com/avashisht/homeplan-core/internal/device"
)

// handleGetLayout returns all saved floor-plan positions.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.layouts == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "layout persistence not configured")
		return
	}

	entries, err := s.layouts.List(r.Context())
	if err != nil {
		s.logger.Error("listing saved layout failed", "error", err)
		writeInternalError(w, "failed to list layout")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"positions": entries, "count": len(entries)})
}

// positionRequest is the body of PUT .../position.
type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// handleSetPosition saves a floor-plan position for a channel and applies
// it to the in-memory catalog.
//
// Body: {"x": 0.4, "y": 0.55} with both coordinates in [0,1].
func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	if s.layouts == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeUnavailable, "layout persistence not configured")
		return
	}

	ch, ok := channelFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.catalog.Get(ch); err != nil {
		writeNotFound(w, "device not found")
		return
	}

	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.X < 0 || req.X > 1 || req.Y < 0 || req.Y > 1 {
		writeBadRequest(w, "coordinates must be within [0,1]")
		return
	}

	pos := device.Position{X: req.X, Y: req.Y}
	if err := s.layouts.Save(r.Context(), ch, pos); err != nil {
		s.logger.Error("saving position failed", "error", err,
			"device_id", ch.DeviceID, "switch_number", ch.SwitchNumber)
		writeInternalError(w, "failed to save position")
		return
	}

	// Catalog update is best-effort: the channel was checked above, and a
	// restart rebuilds the catalog from the saved layout anyway.
	//nolint:errcheck
	s.catalog.SetPosition(ch, pos)

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":     ch.DeviceID,
		"switch_number": ch.SwitchNumber,
		"x":             pos.X,
		"y":             pos.Y,
	})
}
