package server

import (
	"net/http"
	"time"

	"github.com/microbiomedata/nmdc-orcid-creditor/server/authflowrepo"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// LoginRedirectHandler starts the ORCID sign-in by sending the browser to ORCID
// with a fresh state value.
func (s *Server) LoginRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		state, err := generateRandomString(stateBytes)
		if err != nil {
			logger.Error().Err(err).Msg("failed to generate state")
			s.renderFailure(w, r, http.StatusInternalServerError, "Failed to start ORCID login.")
			return
		}

		var verifier string
		if s.config.GetRequirePKCE() {
			verifier = oauth2.GenerateVerifier()
		}

		s.authFlows.PurgeExpired(time.Now().Add(-s.config.GetAuthFlowTimeout()))
		if err := s.authFlows.Upsert(state, &authflowrepo.AuthFlowState{
			CodeVerifier: verifier,
			ReturnURL:    RouteCredits,
			CreatedAt:    time.Now(),
		}); err != nil {
			logger.Error().Err(err).Msg("failed to store auth flow state")
			s.renderFailure(w, r, http.StatusInternalServerError, "Failed to start ORCID login.")
			return
		}

		http.Redirect(w, r, s.login.AuthCodeURL(state, verifier), http.StatusFound)
	}
}

// CodeExchangeHandler is the OAuth redirect target. Failures render a page rather
// than redirecting so the researcher sees what went wrong.
func (s *Server) CodeExchangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())
		query := r.URL.Query()

		if errorParam := query.Get("error"); errorParam != "" {
			logger.Warn().Str("error", errorParam).Str("error_description", query.Get("error_description")).Msg("ORCID authorization denied")
			s.renderFailure(w, r, http.StatusBadRequest, "Failed to log in with ORCID: authorization was not granted.")
			return
		}

		code, state := query.Get("code"), query.Get("state")
		if code == "" || state == "" {
			s.renderFailure(w, r, http.StatusBadRequest, "Failed to log in with ORCID: the request is missing its code or state.")
			return
		}

		flow, err := s.authFlows.Get(state)
		if err != nil || flow == nil {
			logger.Warn().Err(err).Msg("unknown OAuth state")
			s.renderFailure(w, r, http.StatusBadRequest, "Failed to log in with ORCID: the login attempt is unknown or has already been used.")
			return
		}
		// State values are single use
		if err := s.authFlows.Delete(state); err != nil {
			logger.Error().Err(err).Msg("failed to delete auth flow state")
		}
		if time.Since(flow.CreatedAt) > s.config.GetAuthFlowTimeout() {
			s.renderFailure(w, r, http.StatusBadRequest, "Failed to log in with ORCID: the login attempt has expired.")
			return
		}

		cred, err := s.login.Exchange(r.Context(), code, flow.CodeVerifier)
		if err != nil {
			logger.Error().Err(err).Msg("ORCID code exchange failed")
			s.renderFailure(w, r, http.StatusBadGateway, "Failed to exchange the ORCID authorization code for an access token.")
			return
		}

		value, err := s.sessions.Encode(*cred)
		if err != nil {
			logger.Error().Err(err).Msg("failed to encode session")
			s.renderFailure(w, r, http.StatusInternalServerError, "Failed to start a session.")
			return
		}
		s.SetSessionCookie(w, r, value, s.sessions.MaxAge())

		logger.Info().Str("orcid_id", cred.OrcidID).Msg("signed in")
		returnURL := flow.ReturnURL
		if returnURL == "" {
			returnURL = RouteCredits
		}
		http.Redirect(w, r, returnURL, http.StatusFound)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteHome, http.StatusFound)
	}
}
