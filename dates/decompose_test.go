package dates_test

import (
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/dates"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		input string
		want  dates.Date
	}{
		{"2023-01-01", dates.Date{Year: 2023, Month: 1, Day: 1}},
		{"2023-12-31T23:59:59Z", dates.Date{Year: 2023, Month: 12, Day: 31}},
		{"2023-02-14T08:00:00.000Z", dates.Date{Year: 2023, Month: 2, Day: 14}},
		{"2023-07-04T08:00:00.123456Z", dates.Date{Year: 2023, Month: 7, Day: 4}},
		{"2023-07-04T23:30:00-07:00", dates.Date{Year: 2023, Month: 7, Day: 4}},
		{"2023-07-04T00:30:00+0530", dates.Date{Year: 2023, Month: 7, Day: 4}},
		{"2024-02-29T00:00:00", dates.Date{Year: 2024, Month: 2, Day: 29}},
		{" 2022-11-05 ", dates.Date{Year: 2022, Month: 11, Day: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := dates.Decompose(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecompose_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2023-13-01", "2023/01/01", "01-02-2023", "2023-02-30"} {
		t.Run(input, func(t *testing.T) {
			_, err := dates.Decompose(input)
			require.ErrorIs(t, err, apperrors.ErrInvalidDate)
		})
	}
}

func TestDate_String(t *testing.T) {
	require.Equal(t, "2023-01-09", dates.Date{Year: 2023, Month: 1, Day: 9}.String())
}
