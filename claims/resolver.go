// Package claims turns a signed-in researcher's request for a credit type into
// an ORCID affiliation plus a ledger entry recording it.
package claims

import (
	"context"
	"fmt"
	"time"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	"github.com/microbiomedata/nmdc-orcid-creditor/dates"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/rs/zerolog"
)

// Ledger is the remote record of credits and claims.
type Ledger interface {
	ListCredits(ctx context.Context, orcidID string) ([]credits.Credit, error)
	RecordClaim(ctx context.Context, claim credits.Claim) ([]credits.Credit, error)
}

// AffiliationSubmitter writes an affiliation to the researcher's ORCID record and
// returns its put-code.
type AffiliationSubmitter interface {
	Submit(ctx context.Context, cred identity.Credential, credit credits.Credit) (string, error)
}

// OutcomeRecorder receives one outcome label per claim attempt.
type OutcomeRecorder interface {
	RecordClaimOutcome(outcome string)
}

type Resolver struct {
	ledger    Ledger
	submitter AffiliationSubmitter
	locker    Locker
	recorder  OutcomeRecorder
	timeout   time.Duration
}

type Option func(*Resolver)

// WithLocker replaces the default in-process lock.
func WithLocker(l Locker) Option {
	return func(r *Resolver) {
		r.locker = l
	}
}

// WithClaimTimeout bounds a whole claim attempt. Set it no longer than the
// lock TTL so the lock cannot lapse while the claim is still running.
func WithClaimTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

func WithOutcomeRecorder(rec OutcomeRecorder) Option {
	return func(r *Resolver) {
		r.recorder = rec
	}
}

func NewResolver(ledger Ledger, submitter AffiliationSubmitter, opts ...Option) *Resolver {
	r := &Resolver{
		ledger:    ledger,
		submitter: submitter,
		locker:    NewMemoryLocker(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Claim claims the first unclaimed credit of creditType for the credential's
// subject and returns the ledger rows as they stand after the claim.
//
// Nothing is retried. An error wrapping ErrClaimNotRecorded means the affiliation
// exists on ORCID but the ledger does not show it; the put-code is in the
// ReconciliationError and in the log.
func (r *Resolver) Claim(ctx context.Context, cred *identity.Credential, creditType string) (updated []credits.Credit, err error) {
	defer func() {
		if r.recorder != nil {
			r.recorder.RecordClaimOutcome(Outcome(err))
		}
	}()

	valid, ok := identity.Validate(cred)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}

	logger := zerolog.Ctx(ctx).With().
		Str("orcid_id", valid.OrcidID).
		Str("credit_type", creditType).
		Logger()
	ctx = logger.WithContext(ctx)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	unlock, err := r.locker.Lock(ctx, lockKey(valid.OrcidID, creditType))
	if err != nil {
		logger.Warn().Err(err).Msg("claim lock not acquired")
		return nil, err
	}
	defer unlock()

	rows, err := r.ledger.ListCredits(ctx, valid.OrcidID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load credits")
		return nil, err
	}

	credit, found := credits.SelectUnclaimed(rows, creditType)
	if !found {
		logger.Info().Msg("no unclaimed credit of this type")
		return nil, apperrors.ErrNoMatchingCredit
	}

	if err := checkRow(credit); err != nil {
		logger.Error().Err(err).Interface("row", credit).Msg("malformed ledger row")
		return nil, err
	}

	putCode, err := r.submitter.Submit(ctx, *valid, credit)
	if err != nil {
		logger.Error().Err(err).Msg("failed to claim credit")
		return nil, err
	}
	logger = logger.With().Str("put_code", putCode).Logger()

	updated, err = r.ledger.RecordClaim(ctx, credits.Claim{
		OrcidID:            valid.OrcidID,
		CreditType:         credit.CreditType,
		StartDate:          credit.StartDate,
		EndDate:            credit.EndDate,
		AffiliationPutCode: putCode,
	})
	if err == nil && !recorded(updated, credit, putCode) {
		err = apperrors.Wrapf(apperrors.ErrLedgerUnavailable, "ledger did not record the claim")
	}
	if err != nil {
		logger.Error().Err(err).
			Str("start_date", credit.StartDate).
			Str("end_date", credit.EndDate).
			Msg("affiliation created on ORCID but claim not recorded; reconcile the ledger manually")
		return nil, &ReconciliationError{
			OrcidID:    valid.OrcidID,
			CreditType: credit.CreditType,
			PutCode:    putCode,
			Err:        err,
		}
	}

	logger.Info().Msg("credit claimed")
	return updated, nil
}

// checkRow rejects rows the ORCID payload cannot be built from.
func checkRow(credit credits.Credit) error {
	if _, err := credits.ParseAffiliationType(credit.AffiliationType); err != nil {
		return err
	}
	for _, value := range []string{credit.StartDate, credit.EndDate} {
		if value == "" {
			continue
		}
		if _, err := dates.Decompose(value); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrDataIntegrity, err)
		}
	}
	return nil
}

// recorded reports whether the ledger's reply shows credit claimed with putCode.
// The proxy answers a write that matched no row with the unchanged snapshot.
func recorded(rows []credits.Credit, credit credits.Credit, putCode string) bool {
	for _, row := range rows {
		if row.CreditType == credit.CreditType &&
			row.StartDate == credit.StartDate &&
			row.EndDate == credit.EndDate &&
			row.IsClaimed() &&
			row.AffiliationPutCode == putCode {
			return true
		}
	}
	return false
}

func lockKey(orcidID, creditType string) string {
	return orcidID + "|" + creditType
}
