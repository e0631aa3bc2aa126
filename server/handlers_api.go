package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/rs/zerolog"
)

const maxClaimBodyBytes = 4096

type creditsResponse struct {
	OrcidID string           `json:"orcid_id"`
	Credits []credits.Credit `json:"credits"`
}

// claimRequest only reads credit_type; other fields a client sends are ignored.
type claimRequest struct {
	CreditType string `json:"credit_type"`
}

func (s *Server) APICreditsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := credentialFromContext(r.Context())
		if !ok {
			unauthorizedJSON(w, r)
			return
		}

		rows, err := s.ledger.ListCredits(r.Context(), cred.OrcidID)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load credits")
			writeError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, creditsResponse{OrcidID: cred.OrcidID, Credits: rows})
	}
}

func (s *Server) APIClaimHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := credentialFromContext(r.Context())
		if !ok {
			unauthorizedJSON(w, r)
			return
		}

		var req claimRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxClaimBodyBytes)).Decode(&req); err != nil {
			writeError(w, apperrors.Wrapf(apperrors.ErrInvalidRequest, "decode claim body: %v", err))
			return
		}
		req.CreditType = strings.TrimSpace(req.CreditType)
		if req.CreditType == "" {
			writeError(w, apperrors.Wrapf(apperrors.ErrInvalidRequest, "credit_type is required"))
			return
		}

		updated, err := s.claims.Claim(r.Context(), cred, req.CreditType)
		if err != nil {
			writeError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, creditsResponse{OrcidID: cred.OrcidID, Credits: updated})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.health != nil {
			if err := s.health(r.Context()); err != nil {
				zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
				WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
