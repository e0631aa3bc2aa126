package config

import "time"

const (
	ledgerURLVar          = "GOOGLE_APPS_SCRIPT_URL"
	ledgerSharedSecretVar = "GOOGLE_APPS_SCRIPT_SHARED_SECRET"
)

type LedgerConfig interface {
	GetLedgerURL() string
	GetLedgerSharedSecret() string
	GetUpstreamTimeout() time.Duration
}

type Ledger struct{}

var _ LedgerConfig = Ledger{}

// GetLedgerURL is the deployed Apps Script web app that proxies the spreadsheet
func (Ledger) GetLedgerURL() string {
	return GetEnv(ledgerURLVar, "")
}

func (Ledger) GetLedgerSharedSecret() string {
	return GetEnv(ledgerSharedSecretVar, "")
}

// GetUpstreamTimeout is zero (transport default) unless UPSTREAM_TIMEOUT is set
func (Ledger) GetUpstreamTimeout() time.Duration {
	return GetEnvDuration("UPSTREAM_TIMEOUT", 0)
}
