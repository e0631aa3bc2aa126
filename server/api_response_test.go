package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/claims"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, "please log in"},
		{"no match", apperrors.ErrNoMatchingCredit, http.StatusBadRequest, "nothing to claim"},
		{"in progress", apperrors.Wrapf(apperrors.ErrClaimInProgress, "key"), http.StatusConflict, "a claim for this credit is already in progress"},
		{"rate limited", apperrors.ErrRateLimited, http.StatusTooManyRequests, "too many claim attempts, please try again later"},
		{"data integrity", apperrors.Wrapf(apperrors.ErrDataIntegrity, "row"), http.StatusInternalServerError, "credit record is malformed"},
		{"submission", apperrors.ErrAffiliationSubmissionFailed, http.StatusInternalServerError, "failed to claim credit"},
		{
			"not recorded",
			&claims.ReconciliationError{PutCode: "98765", Err: apperrors.ErrLedgerUnavailable},
			http.StatusInternalServerError,
			"failed to record claim",
		},
		{"ledger", apperrors.Wrapf(apperrors.ErrLedgerUnavailable, "status 502"), http.StatusInternalServerError, "failed to load credits"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := errorStatus(tt.err)
			require.Equal(t, tt.status, status)
			require.Equal(t, tt.message, message)
		})
	}
}
