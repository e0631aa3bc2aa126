package config

import (
	"fmt"
	"strings"
)

type Config interface {
	EnvConfig
	CorsConfig
	OrcidConfig
	LedgerConfig
	SecurityConfig
	Validate() error
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
	GetRedisURL() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Orcid
	Ledger
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate reports every required variable that is unset.
func (c mainConfig) Validate() error {
	var missing []string
	require := func(name, value string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	require(baseURLVar, c.GetEnvValue(baseURLVar))
	require(sessionSecretVar, c.GetSessionSecret())
	require(orcidClientIDVar, c.GetClientID())
	require(orcidClientSecretVar, c.GetClientSecret())
	require(orcidAuthorizeURLVar, c.GetAuthorizeURL())
	require(orcidTokenURLVar, c.GetTokenURL())
	require(orcidAPIBaseURLVar, c.GetAPIBaseURL())
	require(ledgerURLVar, c.GetLedgerURL())
	require(ledgerSharedSecretVar, c.GetLedgerSharedSecret())

	if len(missing) > 0 {
		return fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	return nil
}
