// Package dates turns the ledger's date strings into calendar parts.
package dates

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
)

// Date is a calendar date as written in the source string's own offset.
type Date struct {
	Year  int
	Month int
	Day   int
}

// layouts are tried in order. RFC3339Nano accepts optional fractional seconds with
// either a "Z" or a "+hh:mm" offset.
var layouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// Decompose parses a bare calendar date or a full timestamp into its (year, month, day).
// An empty string is a usage error: callers treat an absent date separately.
func Decompose(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Date{}, apperrors.Wrapf(apperrors.ErrInvalidDate, "empty date")
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		year, month, day := t.Date()
		return Date{Year: year, Month: int(month), Day: day}, nil
	}

	return Date{}, apperrors.Wrapf(apperrors.ErrInvalidDate, "unrecognised date %q", value)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
