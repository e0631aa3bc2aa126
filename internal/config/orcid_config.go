package config

import "strings"

const (
	orcidClientIDVar     = "ORCID_CLIENT_ID"
	orcidClientSecretVar = "ORCID_CLIENT_SECRET"
	orcidAuthorizeURLVar = "ORCID_AUTHORIZE_BASE_URL"
	orcidTokenURLVar     = "ORCID_ACCESS_TOKEN_URL"
	orcidAPIBaseURLVar   = "ORCID_API_BASE_URL"
)

type OrcidConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetAuthorizeURL() string
	GetTokenURL() string
	GetScopes() []string
	GetAPIBaseURL() string
	GetOIDCIssuer() string
	GetJWKSURL() string
	GetOrganization() Organization
}

// Organization describes the credit-issuing organization written into every affiliation
type Organization struct {
	Name                 string
	City                 string
	Region               string
	Country              string
	DisambiguatedID      string
	DisambiguationSource string
}

type Orcid struct{}

var _ OrcidConfig = Orcid{}

func (Orcid) GetClientID() string {
	return GetEnv(orcidClientIDVar, "")
}

func (Orcid) GetClientSecret() string {
	return GetEnv(orcidClientSecretVar, "")
}

// GetAuthorizeURL ends with "/authorize"
func (Orcid) GetAuthorizeURL() string {
	return GetEnv(orcidAuthorizeURLVar, "")
}

// GetTokenURL ends with "/token"
func (Orcid) GetTokenURL() string {
	return GetEnv(orcidTokenURLVar, "")
}

// GetScopes splits the space-delimited ORCID_OAUTH_SCOPES
func (Orcid) GetScopes() []string {
	return strings.Fields(GetEnv("ORCID_OAUTH_SCOPES", "/read-limited /activities/update"))
}

// GetAPIBaseURL is the member API root, e.g. "https://api.sandbox.orcid.org/v3.0"
func (Orcid) GetAPIBaseURL() string {
	return strings.TrimSuffix(GetEnv(orcidAPIBaseURLVar, ""), "/")
}

// GetOIDCIssuer enables ID token verification when set together with GetJWKSURL
func (Orcid) GetOIDCIssuer() string {
	return GetEnv("ORCID_OIDC_ISSUER", "")
}

func (Orcid) GetJWKSURL() string {
	return GetEnv("ORCID_JWKS_URL", "")
}

func (Orcid) GetOrganization() Organization {
	return Organization{
		Name:                 GetEnv("ORCID_ORG_NAME", "National Microbiome Data Collaborative"),
		City:                 GetEnv("ORCID_ORG_CITY", "Berkeley"),
		Region:               GetEnv("ORCID_ORG_REGION", "CA"),
		Country:              GetEnv("ORCID_ORG_COUNTRY", "US"),
		DisambiguatedID:      GetEnv("ORCID_ORG_DISAMBIGUATED_ID", "https://ror.org/02jbv0t02"),
		DisambiguationSource: GetEnv("ORCID_ORG_DISAMBIGUATION_SOURCE", "ROR"),
	}
}
