// Package ledger reads and writes credit rows through the spreadsheet proxy.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/rs/zerolog"
)

// maxLoggedBody bounds how much of an unexpected upstream body is logged
const maxLoggedBody = 2048

// Client talks to the proxy with a shared secret carried as a query parameter.
// It holds no state between calls.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	sharedSecret string
}

func NewClient(httpClient *http.Client, endpoint, sharedSecret string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient:   httpClient,
		endpoint:     endpoint,
		sharedSecret: sharedSecret,
	}
}

// ListCredits returns every row for the ORCID iD in ledger order.
func (c *Client) ListCredits(ctx context.Context, orcidID string) ([]credits.Credit, error) {
	if err := credits.ValidateOrcidID(orcidID); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("orcid_id", orcidID)
	return c.do(ctx, http.MethodGet, params)
}

// RecordClaim marks the matching row claimed and returns the post-write snapshot.
// It is not idempotent and is never retried here.
func (c *Client) RecordClaim(ctx context.Context, claim credits.Claim) ([]credits.Credit, error) {
	if err := credits.ValidateOrcidID(claim.OrcidID); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("orcid_id", claim.OrcidID)
	params.Set("credit_type", claim.CreditType)
	params.Set("start_date", claim.StartDate)
	params.Set("end_date", claim.EndDate)
	params.Set("affiliation_put_code", claim.AffiliationPutCode)
	return c.do(ctx, http.MethodPost, params)
}

func (c *Client) do(ctx context.Context, method string, params url.Values) ([]credits.Credit, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("upstream", "ledger").
		Str("method", method).
		Str("orcid_id", params.Get("orcid_id")).
		Logger()

	reqURL, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse endpoint: %v", apperrors.ErrLedgerUnavailable, err)
	}
	params.Set("shared_secret", c.sharedSecret)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", apperrors.ErrLedgerUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("ledger request failed")
		return nil, fmt.Errorf("%w: %v", apperrors.ErrLedgerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error().Err(err).Int("status", resp.StatusCode).Msg("failed to read ledger response")
		return nil, fmt.Errorf("%w: read body: %v", apperrors.ErrLedgerUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error().Int("status", resp.StatusCode).Str("body", truncate(body)).Msg("ledger returned error status")
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrLedgerUnavailable, resp.StatusCode)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	var parsed response
	if err := decoder.Decode(&parsed); err != nil {
		logger.Error().Err(err).Str("body", truncate(body)).Msg("failed to parse ledger response")
		return nil, fmt.Errorf("%w: parse response: %v", apperrors.ErrLedgerUnavailable, err)
	}
	if parsed.Error != "" {
		logger.Error().Str("ledger_error", parsed.Error).Msg("ledger rejected request")
		return nil, fmt.Errorf("%w: %s", apperrors.ErrLedgerUnavailable, parsed.Error)
	}

	logger.Debug().Int("rows", len(parsed.Credits)).Msg("ledger response")
	return toCredits(parsed.Credits), nil
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
