package http

import (
	"net/http"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/utils"
)

type healthResponse struct {
	Success bool   `json:"success"`
	Version string `json:"version,omitempty"`
}

// health handles GET /api/health. Unauthenticated liveness probe.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Success: true,
		Version: h.app.Version,
	}
	if _, err := utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing health response")
	}
}
