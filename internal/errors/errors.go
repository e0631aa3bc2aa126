package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the credit claim workflow
var (
	// Identity errors
	ErrUnauthorized = errors.New("unauthorized")

	// Claim errors
	ErrNoMatchingCredit = errors.New("no matching unclaimed credit")
	ErrClaimInProgress  = errors.New("claim already in progress")
	ErrRateLimited      = errors.New("too many claim attempts")

	// Ledger content is malformed (bad affiliation type, unparseable date)
	ErrDataIntegrity = errors.New("ledger data integrity error")
	ErrInvalidDate   = errors.New("invalid date")

	// Upstream errors
	ErrLedgerUnavailable           = errors.New("ledger unavailable")
	ErrAffiliationSubmissionFailed = errors.New("affiliation submission failed")

	// The affiliation exists on the ORCID record but the ledger does not reflect it
	ErrClaimNotRecorded = errors.New("claim not recorded")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidOrcidID = errors.New("invalid ORCID iD")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
