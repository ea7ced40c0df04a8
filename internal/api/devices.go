package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avashisht/homeplan-core/internal/device"
)

// channelFromRequest extracts the channel identity from the URL.
//
// Returns false after writing an error response if the switch number
// is not a positive integer.
func channelFromRequest(w http.ResponseWriter, r *http.Request) (device.Channel, bool) {
	deviceID := chi.URLParam(r, "deviceID")
	switchStr := chi.URLParam(r, "switch")

	switchNumber, err := strconv.Atoi(switchStr)
	if err != nil || switchNumber < 1 {
		writeBadRequest(w, "switch must be a positive integer")
		return device.Channel{}, false
	}

	return device.Channel{DeviceID: deviceID, SwitchNumber: switchNumber}, true
}

// handleListDevices returns the device catalog, optionally filtered by room.
//
// Query parameters:
//   - room: filter by room tag (living_room, kitchen, ...)
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	var devices []device.Device
	if room := r.URL.Query().Get("room"); room != "" {
		devices = s.catalog.ListByRoom(device.Room(room))
	} else {
		devices = s.catalog.List()
	}

	writeJSON(w, http.StatusOK, map[string]any{"devices": devices, "count": len(devices)})
}

// handleGetDevice returns a single catalog entry.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	ch, ok := channelFromRequest(w, r)
	if !ok {
		return
	}

	dev, err := s.catalog.Get(ch)
	if err != nil {
		writeNotFound(w, "device not found")
		return
	}

	writeJSON(w, http.StatusOK, dev)
}

// handleGetChannelState reads the live power state of a channel from the
// vendor. A failed read reports "unknown" rather than an error, so the UI
// always has something to render.
func (s *Server) handleGetChannelState(w http.ResponseWriter, r *http.Request) {
	ch, ok := channelFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.catalog.Get(ch); err != nil {
		writeNotFound(w, "device not found")
		return
	}

	status := s.controller.Query(r.Context(), ch)

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":     ch.DeviceID,
		"switch_number": ch.SwitchNumber,
		"status":        status,
	})
}

// stateRequest is the body of PUT .../state.
type stateRequest struct {
	State string `json:"state"`
}

// handleSetChannelState applies a symbolic state to a channel.
//
// Body: {"state": "off" | "on" | "low" | "medium" | "high"}
func (s *Server) handleSetChannelState(w http.ResponseWriter, r *http.Request) {
	ch, ok := channelFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.catalog.Get(ch); err != nil {
		writeNotFound(w, "device not found")
		return
	}

	var req stateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	state, err := device.ParseState(req.State)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.controller.Command(r.Context(), ch, state); err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":     ch.DeviceID,
		"switch_number": ch.SwitchNumber,
		"state":         state,
	})
}

// handleToggleChannel flips the power state of a channel.
//
// Returns 409 when the current state cannot be determined: toggling blind
// could turn on a device the user believes is off.
func (s *Server) handleToggleChannel(w http.ResponseWriter, r *http.Request) {
	ch, ok := channelFromRequest(w, r)
	if !ok {
		return
	}

	if _, err := s.catalog.Get(ch); err != nil {
		writeNotFound(w, "device not found")
		return
	}

	if err := s.controller.Toggle(r.Context(), ch); err != nil {
		writeCommandError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"device_id":     ch.DeviceID,
		"switch_number": ch.SwitchNumber,
		"toggled":       true,
	})
}
