package server

// Route path constants
// Paths match the ones the ORCID client registration and the front end already use
const (
	// Pages
	RouteHome    = "/"
	RouteCredits = "/credits"

	// ORCID sign-in
	RouteLogin    = "/redirect-to-orcid-login-page"
	RouteCallback = "/exchange-code-for-token"
	RouteLogout   = "/logout"

	// API Routes
	RouteAPICredits = "/api/credits"
	RouteAPIClaim   = "/api/credits/claim"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStatic = "/static/{file}"
)
