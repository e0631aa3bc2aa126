package orcid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/microbiomedata/nmdc-orcid-creditor/orcid"
	"github.com/stretchr/testify/require"
)

func newLoginProvider(tokenURL string, client *http.Client) *orcid.LoginProvider {
	return orcid.NewLoginProvider(orcid.LoginConfig{
		ClientID:     "APP-123",
		ClientSecret: "secret",
		AuthorizeURL: "https://sandbox.orcid.org/oauth/authorize",
		TokenURL:     tokenURL,
		RedirectURL:  "https://creditor.example.org/exchange-code-for-token",
		Scopes:       []string{"/read-limited", "/activities/update"},
	}, client)
}

func TestLoginProvider_AuthCodeURL(t *testing.T) {
	p := newLoginProvider("https://sandbox.orcid.org/oauth/token", nil)

	u, err := url.Parse(p.AuthCodeURL("state-1", ""))
	require.NoError(t, err)
	require.Equal(t, "sandbox.orcid.org", u.Host)
	q := u.Query()
	require.Equal(t, "APP-123", q.Get("client_id"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "state-1", q.Get("state"))
	require.Equal(t, "/read-limited /activities/update", q.Get("scope"))
	require.Equal(t, "https://creditor.example.org/exchange-code-for-token", q.Get("redirect_uri"))
	require.Empty(t, q.Get("code_challenge"))

	u, err = url.Parse(p.AuthCodeURL("state-2", "verifier-verifier-verifier-verifier-verifier"))
	require.NoError(t, err)
	require.Equal(t, "S256", u.Query().Get("code_challenge_method"))
	require.NotEmpty(t, u.Query().Get("code_challenge"))
}

func TestLoginProvider_Exchange(t *testing.T) {
	t.Run("credential from token response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "code-1", r.PostForm.Get("code"))
			require.Equal(t, "APP-123", r.PostForm.Get("client_id"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-123","token_type":"bearer","refresh_token":"r","expires_in":631138518,"scope":"/read-limited /activities/update","name":"Ada Lovelace","orcid":"0000-0001-2345-6789"}`))
		}))
		defer server.Close()

		p := newLoginProvider(server.URL, server.Client())
		cred, err := p.Exchange(context.Background(), "code-1", "")
		require.NoError(t, err)
		require.Equal(t, "0000-0001-2345-6789", cred.OrcidID)
		require.Equal(t, "Ada Lovelace", cred.Name)
		require.Equal(t, "access-123", cred.AccessToken)
		require.NotNil(t, cred.ExpiresAt)
		require.True(t, cred.ExpiresAt.After(time.Now().Add(24*time.Hour)))
	})

	t.Run("missing ORCID iD", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"access-123","token_type":"bearer","expires_in":3600}`))
		}))
		defer server.Close()

		p := newLoginProvider(server.URL, server.Client())
		_, err := p.Exchange(context.Background(), "code-1", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "no ORCID iD")
	})

	t.Run("token endpoint rejects code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Reused authorization code"}`))
		}))
		defer server.Close()

		p := newLoginProvider(server.URL, server.Client())
		_, err := p.Exchange(context.Background(), "code-1", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), "token exchange failed")
	})
}
