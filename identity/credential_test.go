package identity_test

import (
	"testing"
	"time"

	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	identity.NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { identity.NowTimeFunc = time.Now })

	at := func(d time.Duration) *time.Time {
		ts := now.Add(d)
		return &ts
	}

	t.Run("expires in the future", func(t *testing.T) {
		c := &identity.Credential{OrcidID: "0000-0001-2345-6789", AccessToken: "tok", ExpiresAt: at(time.Minute)}
		got, ok := identity.Validate(c)
		require.True(t, ok)
		require.Same(t, c, got)
	})

	tests := []struct {
		name string
		cred *identity.Credential
	}{
		{"expired a minute ago", &identity.Credential{AccessToken: "tok", ExpiresAt: at(-time.Minute)}},
		{"expires exactly now", &identity.Credential{AccessToken: "tok", ExpiresAt: at(0)}},
		{"no expiry", &identity.Credential{AccessToken: "tok"}},
		{"nil credential", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := identity.Validate(tt.cred)
			require.False(t, ok)
			require.Nil(t, got)
		})
	}
}
