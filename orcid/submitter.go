// Package orcid talks to ORCID: the sign-in flow and the member API that
// writes affiliations to a researcher's record.
package orcid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	"github.com/microbiomedata/nmdc-orcid-creditor/dates"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/config"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/rs/zerolog"
)

const (
	contentTypeOrcidJSON = "application/vnd.orcid+json"
	maxLoggedBody        = 2048
)

// Submitter creates membership and service affiliations on ORCID records.
type Submitter struct {
	httpClient   *http.Client
	apiBaseURL   string
	organization Organization
}

func NewSubmitter(httpClient *http.Client, apiBaseURL string, org config.Organization) *Submitter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Submitter{
		httpClient:   httpClient,
		apiBaseURL:   apiBaseURL,
		organization: NewOrganization(org),
	}
}

// BuildAffiliation maps a credit onto the ORCID payload. Date blocks are only
// present for non-empty dates.
func (s *Submitter) BuildAffiliation(credit credits.Credit) (Affiliation, error) {
	affiliation := Affiliation{
		RoleTitle:    credit.CreditType,
		Organization: s.organization,
		URL:          ValueElement{Value: credit.DetailsURL},
	}

	if credit.StartDate != "" {
		start, err := dates.Decompose(credit.StartDate)
		if err != nil {
			return Affiliation{}, fmt.Errorf("%w: start date: %w", apperrors.ErrDataIntegrity, err)
		}
		affiliation.StartDate = NewFuzzyDate(start)
	}
	if credit.EndDate != "" {
		end, err := dates.Decompose(credit.EndDate)
		if err != nil {
			return Affiliation{}, fmt.Errorf("%w: end date: %w", apperrors.ErrDataIntegrity, err)
		}
		affiliation.EndDate = NewFuzzyDate(end)
	}

	return affiliation, nil
}

// Submit creates the affiliation and returns its put-code. Creation only counts
// when ORCID answers 201 and the location header carries a put-code.
func (s *Submitter) Submit(ctx context.Context, cred identity.Credential, credit credits.Credit) (string, error) {
	affiliationType, err := credits.ParseAffiliationType(credit.AffiliationType)
	if err != nil {
		return "", err
	}
	affiliation, err := s.BuildAffiliation(credit)
	if err != nil {
		return "", err
	}

	logger := zerolog.Ctx(ctx).With().
		Str("upstream", "orcid").
		Str("orcid_id", cred.OrcidID).
		Str("credit_type", credit.CreditType).
		Str("affiliation_type", string(affiliationType)).
		Logger()

	body, err := json.Marshal(affiliation)
	if err != nil {
		return "", fmt.Errorf("%w: encode payload: %v", apperrors.ErrAffiliationSubmissionFailed, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s", s.apiBaseURL, cred.OrcidID, affiliationType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", apperrors.ErrAffiliationSubmissionFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Content-Type", contentTypeOrcidJSON)
	req.Header.Set("Accept", contentTypeOrcidJSON)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("affiliation request failed")
		return "", fmt.Errorf("%w: %v", apperrors.ErrAffiliationSubmissionFailed, err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	putCode, ok := ExtractPutCode(location)
	if resp.StatusCode != http.StatusCreated || !ok {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		logger.Error().
			Int("status", resp.StatusCode).
			Interface("headers", resp.Header).
			Str("body", string(respBody)).
			Msg("ORCID did not create the affiliation")
		if resp.StatusCode != http.StatusCreated {
			return "", fmt.Errorf("%w: status %d", apperrors.ErrAffiliationSubmissionFailed, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: no put-code in location %q", apperrors.ErrAffiliationSubmissionFailed, location)
	}

	logger.Info().Str("put_code", putCode).Msg("affiliation created")
	return putCode, nil
}
