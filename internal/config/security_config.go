package config

import "time"

const sessionSecretVar = "SERVER_SESSION_SECRET_KEY"

type SecurityConfig interface {
	GetSessionSecret() string
	GetRequirePKCE() bool
	GetMaxSessionAge() time.Duration
	GetAuthFlowTimeout() time.Duration
	GetClaimRateLimitPerMinute() int
	GetClaimLockTTL() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionSecret() string {
	return GetEnv(sessionSecretVar, "")
}

// GetRequirePKCE is off by default because ORCID does not advertise PKCE for confidential clients
func (Security) GetRequirePKCE() bool {
	return GetEnvBool("REQUIRE_PKCE", false)
}

// GetMaxSessionAge caps the session cookie lifetime; the credential's own expiry still applies
func (Security) GetMaxSessionAge() time.Duration {
	return GetEnvDuration("SESSION_MAX_AGE", 24*time.Hour)
}

func (Security) GetAuthFlowTimeout() time.Duration {
	return 10 * time.Minute
}

func (Security) GetClaimRateLimitPerMinute() int {
	return GetEnvInt("CLAIM_RATE_LIMIT_PER_MINUTE", 10)
}

// GetClaimLockTTL bounds how long a (subject, credit type) claim lock survives a crashed holder
func (Security) GetClaimLockTTL() time.Duration {
	return GetEnvDuration("CLAIM_LOCK_TTL", 2*time.Minute)
}
