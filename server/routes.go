package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

func (s *Server) initRoutes() {
	// Pages
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCredits, ChainMiddleware(s.CreditsPageHandler(), s.HTMLMiddleWare(s.RequireCredential(redirectHome))...))

	// ORCID sign-in
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginRedirectHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteCallback, ChainMiddleware(s.CodeExchangeHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// API routes
	s.RegisterRouteHandler("GET "+RouteAPICredits, ChainMiddleware(s.APICreditsHandler(), s.APIMiddleware(s.RequireCredential(unauthorizedJSON))...))
	s.RegisterRouteHandler("POST "+RouteAPIClaim, ChainMiddleware(s.APIClaimHandler(), s.APIMiddleware(
		s.RequireCredential(unauthorizedJSON),
		s.ClaimRateLimitMiddleware(),
	)...))
	s.RegisterRouteHandler("OPTIONS /api/", ChainMiddleware(http.NotFound, s.APIMiddleware()...))

	// Operational
	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.NoCacheMiddleware))
	if s.metrics != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics)
	}

	s.RegisterRouteHandler("GET "+RouteStatic, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware)...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.PathValue("file"), "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError(r, err)
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(r *http.Request, err error) {
	var displayMethod string
	paddedMethod := " " + r.Method
	if color, ok := methodColors[r.Method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Msgf("[%s] %s", displayMethod, r.URL.Path)
}
