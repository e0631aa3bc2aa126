package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
)

type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as JSON with the given status code and no-cache headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// errorStatus maps the claim workflow's errors onto a status and a message safe to
// show the researcher. ErrClaimNotRecorded is checked before ErrLedgerUnavailable
// because a reconciliation error wraps both.
func errorStatus(err error) (int, string) {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, "please log in"
	case apperrors.Is(err, apperrors.ErrInvalidRequest):
		return http.StatusBadRequest, "invalid request"
	case apperrors.Is(err, apperrors.ErrNoMatchingCredit):
		return http.StatusBadRequest, "nothing to claim"
	case apperrors.Is(err, apperrors.ErrClaimInProgress):
		return http.StatusConflict, "a claim for this credit is already in progress"
	case apperrors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, "too many claim attempts, please try again later"
	case apperrors.Is(err, apperrors.ErrDataIntegrity):
		return http.StatusInternalServerError, "credit record is malformed"
	case apperrors.Is(err, apperrors.ErrAffiliationSubmissionFailed):
		return http.StatusInternalServerError, "failed to claim credit"
	case apperrors.Is(err, apperrors.ErrClaimNotRecorded):
		return http.StatusInternalServerError, "failed to record claim"
	case apperrors.Is(err, apperrors.ErrLedgerUnavailable), apperrors.Is(err, apperrors.ErrInvalidOrcidID):
		return http.StatusInternalServerError, "failed to load credits"
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, message := errorStatus(err)
	WriteJSON(w, status, errorResponse{Error: message})
}
