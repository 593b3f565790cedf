package http

import (
	"net/http"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/utils"
)

// listFiles handles GET /api/files?channel=<name>&dir=<dir>.
func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	dir := r.URL.Query().Get("dir")

	resp, err := h.services.Records.List(r.Context(), channel, dir)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing list response")
	}
}
