// Package authflowrepo remembers in-flight ORCID sign-ins between the redirect to
// ORCID and the callback, keyed by the OAuth state parameter.
package authflowrepo

import "time"

type AuthFlowState struct {
	CodeVerifier string // empty unless PKCE is enabled
	ReturnURL    string
	CreatedAt    time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	Delete(state string) error
	// PurgeExpired drops flows created before cutoff and reports how many went
	PurgeExpired(cutoff time.Time) int
}
