package orcid

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"golang.org/x/oauth2"
)

// LoginConfig carries the static ORCID client registration
type LoginConfig struct {
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	RedirectURL  string
	Scopes       []string

	// Optional: verify the OpenID Connect ID token when ORCID returns one
	OIDCIssuer string
	JWKSURL    string
}

// LoginProvider runs the authorization-code flow against ORCID.
type LoginProvider struct {
	oauth2Config *oauth2.Config
	verifier     *oidc.IDTokenVerifier
	httpClient   *http.Client
}

func NewLoginProvider(cfg LoginConfig, httpClient *http.Client) *LoginProvider {
	p := &LoginProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthorizeURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
			RedirectURL: cfg.RedirectURL,
			Scopes:      cfg.Scopes,
		},
		httpClient: httpClient,
	}

	if cfg.OIDCIssuer != "" && cfg.JWKSURL != "" {
		ctx := context.Background()
		if httpClient != nil {
			ctx = oidc.ClientContext(ctx, httpClient)
		}
		keySet := oidc.NewRemoteKeySet(ctx, cfg.JWKSURL)
		p.verifier = oidc.NewVerifier(cfg.OIDCIssuer, keySet, &oidc.Config{ClientID: cfg.ClientID})
	}
	return p
}

// AuthCodeURL builds the ORCID sign-in URL. A non-empty verifier adds a PKCE S256 challenge.
func (p *LoginProvider) AuthCodeURL(state, verifier string) string {
	var opts []oauth2.AuthCodeOption
	if verifier != "" {
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}
	return p.oauth2Config.AuthCodeURL(state, opts...)
}

// Exchange trades the authorization code for a credential. ORCID returns the
// researcher's iD and name alongside the access token.
func (p *LoginProvider) Exchange(ctx context.Context, code, verifier string) (*identity.Credential, error) {
	if p.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	}

	var opts []oauth2.AuthCodeOption
	if verifier != "" {
		opts = append(opts, oauth2.VerifierOption(verifier))
	}

	token, err := p.oauth2Config.Exchange(ctx, code, opts...)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	orcidID, _ := token.Extra("orcid").(string)
	name, _ := token.Extra("name").(string)

	if rawIDToken, ok := token.Extra("id_token").(string); ok && p.verifier != nil {
		idToken, err := p.verifier.Verify(ctx, rawIDToken)
		if err != nil {
			return nil, fmt.Errorf("ID token verification failed: %w", err)
		}
		if orcidID == "" {
			orcidID = idToken.Subject
		}
		if idToken.Subject != orcidID {
			return nil, fmt.Errorf("ID token subject %q does not match ORCID iD %q", idToken.Subject, orcidID)
		}
	}

	if orcidID == "" {
		return nil, errors.New("token response has no ORCID iD")
	}

	cred := &identity.Credential{
		OrcidID:     orcidID,
		Name:        name,
		AccessToken: token.AccessToken,
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		cred.ExpiresAt = &expiry
	}
	return cred, nil
}
