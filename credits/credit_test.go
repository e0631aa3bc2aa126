package credits_test

import (
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	apperrors "github.com/microbiomedata/nmdc-orcid-creditor/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestParseAffiliationType(t *testing.T) {
	got, err := credits.ParseAffiliationType("membership")
	require.NoError(t, err)
	require.Equal(t, credits.AffiliationMembership, got)

	got, err = credits.ParseAffiliationType("service")
	require.NoError(t, err)
	require.Equal(t, credits.AffiliationService, got)

	for _, bad := range []string{"volunteer", "", "Membership", "employment"} {
		_, err := credits.ParseAffiliationType(bad)
		require.ErrorIs(t, err, apperrors.ErrDataIntegrity, bad)
	}
}

func TestValidateOrcidID(t *testing.T) {
	require.NoError(t, credits.ValidateOrcidID("0000-0001-2345-6789"))
	require.NoError(t, credits.ValidateOrcidID("0000-0002-1825-009X"))
	require.ErrorIs(t, credits.ValidateOrcidID("0000-0001-2345"), apperrors.ErrInvalidOrcidID)
	require.ErrorIs(t, credits.ValidateOrcidID("0000-0001-2345-678x"), apperrors.ErrInvalidOrcidID)
	require.ErrorIs(t, credits.ValidateOrcidID(""), apperrors.ErrInvalidOrcidID)
}

func TestSelectUnclaimed(t *testing.T) {
	const creditType = "membership-2023"
	claimed := credits.Credit{CreditType: creditType, StartDate: "2022-01-01", ClaimedAt: "2023-02-14T08:00:00.000Z"}
	unclaimedA := credits.Credit{CreditType: creditType, StartDate: "2023-01-01"}
	unclaimedB := credits.Credit{CreditType: creditType, StartDate: "2024-01-01"}
	other := credits.Credit{CreditType: "service-2024"}

	t.Run("first claimed, second unclaimed selects second", func(t *testing.T) {
		got, ok := credits.SelectUnclaimed([]credits.Credit{other, claimed, unclaimedA}, creditType)
		require.True(t, ok)
		require.Equal(t, unclaimedA, got)
	})

	t.Run("first unclaimed, second claimed selects first", func(t *testing.T) {
		got, ok := credits.SelectUnclaimed([]credits.Credit{unclaimedA, claimed}, creditType)
		require.True(t, ok)
		require.Equal(t, unclaimedA, got)
	})

	t.Run("first match in ledger order wins", func(t *testing.T) {
		got, ok := credits.SelectUnclaimed([]credits.Credit{unclaimedB, unclaimedA}, creditType)
		require.True(t, ok)
		require.Equal(t, unclaimedB, got)
	})

	t.Run("all claimed", func(t *testing.T) {
		_, ok := credits.SelectUnclaimed([]credits.Credit{claimed, other}, creditType)
		require.False(t, ok)
	})

	t.Run("empty ledger", func(t *testing.T) {
		_, ok := credits.SelectUnclaimed(nil, creditType)
		require.False(t, ok)
	})
}
