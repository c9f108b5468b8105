package handlers

import (
	"encoding/json"
	"net/http"

	"media-gallery/internal/gallery"
)

// StatsResponse carries the global catalogue counts
type StatsResponse struct {
	Total  int    `json:"total"`
	Photos int    `json:"photos"`
	Videos int    `json:"videos"`
	Filter string `json:"filter"`
}

func (h *Handler) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Render(r.Context())
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	h.renderJSONResponse(w, r, snap)
}

func (h *Handler) statsHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.Render(r.Context())
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	h.renderJSONResponse(w, r, StatsResponse{
		Total:  snap.Counts.Total,
		Photos: snap.Counts.Photos,
		Videos: snap.Counts.Videos,
		Filter: string(snap.Filter),
	})
}

// deleteMediaHandler removes an entry; unknown ids leave the gallery untouched
func (h *Handler) deleteMediaHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	snap, err := h.session.Dispatch(r.Context(), gallery.ActivateDelete(id))
	if err != nil {
		h.sessionError(w, r, err)
		return
	}
	h.renderJSONResponse(w, r, snap)
}

func (h *Handler) renderJSONResponse(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error(r.Context()).Err(err).Msg("Failed to encode JSON response")
	}
}
