package credits

// SelectUnclaimed returns the first row, in ledger order, with the given credit type and
// no claim timestamp.
//
// The ledger cannot enforce uniqueness of (ORCID iD, credit type), so this assumes there
// are no duplicates; if there are, later rows are only reached once earlier ones are claimed.
// Rows are matched on credit type alone, not on (credit type, start date, end date).
func SelectUnclaimed(rows []Credit, creditType string) (Credit, bool) {
	for _, row := range rows {
		if row.CreditType == creditType && !row.IsClaimed() {
			return row, true
		}
	}
	return Credit{}, false
}
