// Package credits models ledger rows and the rule used to pick the one a claim applies to.
package credits

import (
	"regexp"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
)

// AffiliationType is the ORCID affiliation section a credit is written to
type AffiliationType string

const (
	AffiliationMembership AffiliationType = "membership"
	AffiliationService    AffiliationType = "service"
)

// ParseAffiliationType rejects everything except the two recognised sections.
func ParseAffiliationType(s string) (AffiliationType, error) {
	switch t := AffiliationType(s); t {
	case AffiliationMembership, AffiliationService:
		return t, nil
	default:
		return "", apperrors.Wrapf(apperrors.ErrDataIntegrity, "unrecognised affiliation type %q", s)
	}
}

// Credit is one ledger row. Empty date strings mean the date is absent and an
// empty ClaimedAt means the credit is unclaimed.
type Credit struct {
	OrcidID            string `json:"orcid_id"`
	CreditType         string `json:"credit_type"`
	AffiliationType    string `json:"affiliation_type"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	DetailsURL         string `json:"details_url"`
	ClaimedAt          string `json:"claimed_at"`
	AffiliationPutCode string `json:"affiliation_put_code,omitempty"`
}

func (c Credit) IsClaimed() bool {
	return c.ClaimedAt != ""
}

// Claim is the ledger write that marks a credit as claimed.
// StartDate and EndDate are the row's source strings, passed through verbatim.
type Claim struct {
	OrcidID            string
	CreditType         string
	StartDate          string
	EndDate            string
	AffiliationPutCode string
}

// orcidIDPattern checks syntax only, not the checksum digit.
var orcidIDPattern = regexp.MustCompile(`^\d{4}-\d{4}-\d{4}-\d{3}[0-9X]$`)

func ValidateOrcidID(orcidID string) error {
	if !orcidIDPattern.MatchString(orcidID) {
		return apperrors.Wrapf(apperrors.ErrInvalidOrcidID, "%q", orcidID)
	}
	return nil
}
