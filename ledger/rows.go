package ledger

import (
	"encoding/json"
	"strconv"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
)

// Spreadsheet header names, as labelled by the proxy
const (
	ColumnOrcidID            = "column.ORCID_ID"
	ColumnCreditType         = "column.CREDIT_TYPE"
	ColumnAffiliationType    = "column.AFFILIATION_TYPE"
	ColumnStartDate          = "column.START_DATE"
	ColumnEndDate            = "column.END_DATE"
	ColumnClaimedAt          = "column.CLAIMED_AT"
	ColumnDetailsURL         = "column.DETAILS_URL"
	ColumnAffiliationPutCode = "column.AFFILIATION_PUT_CODE"
)

// Row is a labelled spreadsheet row. Cell values arrive as strings, numbers or
// booleans depending on how the sheet formats them.
type Row map[string]any

// response is the proxy's reply to both reads and writes
type response struct {
	OrcidID string `json:"orcid_id"`
	Credits []Row  `json:"credits"`
	Error   string `json:"error"`
}

func (r Row) cell(column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

// Credit converts the row without validating it; validation belongs to the claim workflow
func (r Row) Credit() credits.Credit {
	return credits.Credit{
		OrcidID:            r.cell(ColumnOrcidID),
		CreditType:         r.cell(ColumnCreditType),
		AffiliationType:    r.cell(ColumnAffiliationType),
		StartDate:          r.cell(ColumnStartDate),
		EndDate:            r.cell(ColumnEndDate),
		DetailsURL:         r.cell(ColumnDetailsURL),
		ClaimedAt:          r.cell(ColumnClaimedAt),
		AffiliationPutCode: r.cell(ColumnAffiliationPutCode),
	}
}

func toCredits(rows []Row) []credits.Credit {
	out := make([]credits.Credit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Credit())
	}
	return out
}
