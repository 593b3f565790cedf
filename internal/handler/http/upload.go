package http

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/adilgabb/commitgate/internal/logger"
	"github.com/adilgabb/commitgate/internal/service"
	"github.com/adilgabb/commitgate/internal/utils"
	"github.com/adilgabb/commitgate/models"
)

// upload handles POST /api/upload: one JSON batch in, one backend
// transaction, one JSON response out.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit)

	var req models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("malformed upload request body")
		writeError(w, r, fmt.Errorf("%w: malformed JSON body: %w", service.ErrInvalidRequest, err))
		return
	}

	resp, err := h.services.Upload.Upload(r.Context(), req, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing upload response")
	}
}

// clientIP returns the request origin with any port stripped. RealIP
// middleware has already resolved forwarding headers into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
