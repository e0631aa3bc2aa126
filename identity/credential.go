// Package identity holds the ORCID credential a researcher signs in with and
// decides whether it may still be used.
package identity

import "time"

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Credential is issued by ORCID at the end of the authorization-code flow.
// It lives only inside the signed session cookie.
type Credential struct {
	OrcidID     string     `json:"orcid_id"`
	Name        string     `json:"name"`
	AccessToken string     `json:"access_token"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// Validate returns the credential unchanged if it carries an expiry strictly after now.
// Expiry is an ordinary outcome, so it is reported through ok rather than an error.
func Validate(c *Credential) (valid *Credential, ok bool) {
	if c == nil || c.ExpiresAt == nil {
		return nil, false
	}
	if !NowTimeFunc().Before(*c.ExpiresAt) {
		return nil, false
	}
	return c, true
}
