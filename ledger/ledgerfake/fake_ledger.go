package ledgerfake

import (
	"context"
	"sync"
	"time"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
)

// FakeLedger is an in-memory ledger that behaves like the spreadsheet proxy:
// a write claims the first unclaimed row matching (ORCID iD, credit type, start, end)
// and always answers with the subject's current rows.
type FakeLedger struct {
	mu   sync.Mutex
	rows []credits.Credit

	ListErr   error
	RecordErr error
	// DropWrites answers writes with the unchanged snapshot, as the proxy does
	// when no row matches the tuple exactly.
	DropWrites bool

	ListCalls   int
	RecordCalls []credits.Claim

	Now func() time.Time
}

func NewFakeLedger(rows ...credits.Credit) *FakeLedger {
	return &FakeLedger{
		rows: append([]credits.Credit(nil), rows...),
		Now:  time.Now,
	}
}

func (l *FakeLedger) ListCredits(_ context.Context, orcidID string) ([]credits.Credit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ListCalls++
	if l.ListErr != nil {
		return nil, l.ListErr
	}
	return l.snapshot(orcidID), nil
}

func (l *FakeLedger) RecordClaim(_ context.Context, claim credits.Claim) ([]credits.Credit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.RecordCalls = append(l.RecordCalls, claim)
	if l.RecordErr != nil {
		return nil, l.RecordErr
	}
	if l.DropWrites {
		return l.snapshot(claim.OrcidID), nil
	}

	for i, row := range l.rows {
		if row.OrcidID == claim.OrcidID &&
			row.CreditType == claim.CreditType &&
			row.StartDate == claim.StartDate &&
			row.EndDate == claim.EndDate &&
			!row.IsClaimed() {
			l.rows[i].ClaimedAt = l.Now().UTC().Format(time.RFC3339Nano)
			l.rows[i].AffiliationPutCode = claim.AffiliationPutCode
			break
		}
	}
	return l.snapshot(claim.OrcidID), nil
}

// Rows returns a copy of every row, for assertions
func (l *FakeLedger) Rows() []credits.Credit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]credits.Credit(nil), l.rows...)
}

func (l *FakeLedger) snapshot(orcidID string) []credits.Credit {
	out := make([]credits.Credit, 0)
	for _, row := range l.rows {
		if row.OrcidID == orcidID {
			out = append(out, row)
		}
	}
	return out
}
