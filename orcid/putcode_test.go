package orcid_test

import (
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/orcid"
	"github.com/stretchr/testify/require"
)

func TestExtractPutCode(t *testing.T) {
	found := map[string]string{
		"https://api.orcid.org/v3.0/0000-0000-0000-000X/service/12345":         "12345",
		"https://api.sandbox.orcid.org/v3.0/0000-0000-0000-000X/service/12345": "12345",
		"http://api.sandbox.orcid.org/v3.0/0000-0000-0000-000X/membership/7":   "7",
	}
	for location, want := range found {
		t.Run(location, func(t *testing.T) {
			got, ok := orcid.ExtractPutCode(location)
			require.True(t, ok)
			require.Equal(t, want, got)
		})
	}

	missing := []string{
		"https://api.orcid.org/v3.0/0000-0000-0000-000X/service/",
		"",
		"https://example.com/v3.0/0000-0000-0000-000X/service/12345",
		"ftp://api.orcid.org/v3.0/0000-0000-0000-000X/service/12345",
		"https://api.orcid.org/v3.0/0000-0000-0000-000X/service/12a",
	}
	for _, location := range missing {
		t.Run("none for "+location, func(t *testing.T) {
			got, ok := orcid.ExtractPutCode(location)
			require.False(t, ok)
			require.Empty(t, got)
		})
	}
}
