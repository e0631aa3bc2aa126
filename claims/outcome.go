package claims

import (
	"fmt"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
)

// Outcome labels, one per terminal state of a claim attempt
const (
	OutcomeClaimed           = "claimed"
	OutcomeUnauthorized      = "unauthorized"
	OutcomeInProgress        = "in_progress"
	OutcomeNoMatch           = "no_matching_credit"
	OutcomeDataIntegrity     = "data_integrity"
	OutcomeLedgerUnavailable = "ledger_unavailable"
	OutcomeSubmissionFailed  = "submission_failed"
	OutcomeNotRecorded       = "not_recorded"
	OutcomeOther             = "error"
)

// Outcome classifies the error returned by Resolver.Claim.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeClaimed
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return OutcomeUnauthorized
	case apperrors.Is(err, apperrors.ErrClaimInProgress):
		return OutcomeInProgress
	case apperrors.Is(err, apperrors.ErrNoMatchingCredit):
		return OutcomeNoMatch
	case apperrors.Is(err, apperrors.ErrDataIntegrity):
		return OutcomeDataIntegrity
	case apperrors.Is(err, apperrors.ErrClaimNotRecorded):
		return OutcomeNotRecorded
	case apperrors.Is(err, apperrors.ErrAffiliationSubmissionFailed):
		return OutcomeSubmissionFailed
	case apperrors.Is(err, apperrors.ErrLedgerUnavailable):
		return OutcomeLedgerUnavailable
	default:
		return OutcomeOther
	}
}

// ReconciliationError reports an affiliation that was created on ORCID but never
// recorded in the ledger.
type ReconciliationError struct {
	OrcidID    string
	CreditType string
	PutCode    string
	Err        error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: %s %s has ORCID put-code %s: %v",
		apperrors.ErrClaimNotRecorded, e.OrcidID, e.CreditType, e.PutCode, e.Err)
}

func (e *ReconciliationError) Unwrap() []error {
	return []error{apperrors.ErrClaimNotRecorded, e.Err}
}
